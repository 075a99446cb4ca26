package models

import (
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
)

// Availability represents a mentor's current capacity for new mentees
type Availability string

const (
	AvailabilityAvailable   Availability = "available"
	AvailabilityBusy        Availability = "busy"
	AvailabilityUnavailable Availability = "unavailable"
)

// CareerFields is the enumerated set of career categories used by both
// mentor profiles and mentee signup.
var CareerFields = []string{
	"Technology & Software",
	"Business & Entrepreneurship",
	"Healthcare & Medicine",
	"Engineering",
	"Education",
	"Finance & Banking",
	"Creative & Media",
	"Law & Public Policy",
}

// IsValidCareerField reports whether field is one of the known career categories
func IsValidCareerField(field string) bool {
	for _, f := range CareerFields {
		if f == field {
			return true
		}
	}
	return false
}

// Mentor represents a diaspora professional mentor in the directory
type Mentor struct {
	ID                   int          `json:"id"`
	Slug                 string       `json:"slug"`
	Name                 string       `json:"name"`
	Title                string       `json:"title"`
	Company              string       `json:"company"`
	Field                string       `json:"field"`
	Location             string       `json:"location"`
	YearsOfExperience    int          `json:"yearsOfExperience"`
	Bio                  string       `json:"bio"`
	Expertise            []string     `json:"expertise"`
	Availability         Availability `json:"availability"`
	ConversationStarters []string     `json:"conversationStarters"`
	IsVisible            bool         `json:"isVisible"`
	CreatedAt            time.Time    `json:"createdAt"`
	UpdatedAt            time.Time    `json:"updatedAt"`
}

// PublicMentorResponse represents the public directory API format
type PublicMentorResponse struct {
	ID                   int      `json:"id"`
	Name                 string   `json:"name"`
	Title                string   `json:"title"`
	Company              string   `json:"company"`
	Field                string   `json:"field"`
	Location             string   `json:"location"`
	YearsOfExperience    int      `json:"yearsOfExperience"`
	Bio                  string   `json:"bio"`
	Expertise            string   `json:"expertise"`
	Availability         string   `json:"availability"`
	ConversationStarters []string `json:"conversationStarters"`
	Link                 string   `json:"link"`
}

// ToPublicResponse converts a Mentor to PublicMentorResponse
func (m *Mentor) ToPublicResponse(baseURL string) PublicMentorResponse {
	return PublicMentorResponse{
		ID:                   m.ID,
		Name:                 m.Name,
		Title:                m.Title,
		Company:              m.Company,
		Field:                m.Field,
		Location:             m.Location,
		YearsOfExperience:    m.YearsOfExperience,
		Bio:                  m.Bio,
		Expertise:            strings.Join(m.Expertise, ","),
		Availability:         string(m.Availability),
		ConversationStarters: m.ConversationStarters,
		Link:                 baseURL + "/mentor/" + m.Slug,
	}
}

// FilterOptions represents options for filtering directory reads
type FilterOptions struct {
	OnlyVisible  bool
	ForceRefresh bool
}

// SaveMentorRequest is the admin payload for creating or editing a mentor
type SaveMentorRequest struct {
	Slug                 string   `json:"slug" binding:"required,max=100"`
	Name                 string   `json:"name" binding:"required,max=200"`
	Title                string   `json:"title" binding:"required,max=200"`
	Company              string   `json:"company" binding:"max=200"`
	Field                string   `json:"field" binding:"required"`
	Location             string   `json:"location" binding:"max=200"`
	YearsOfExperience    int      `json:"yearsOfExperience" binding:"min=0"`
	Bio                  string   `json:"bio" binding:"max=5000"`
	Expertise            []string `json:"expertise"`
	Availability         string   `json:"availability" binding:"required,oneof=available busy unavailable"`
	ConversationStarters []string `json:"conversationStarters"`
}

// ScanMentor scans a single PostgreSQL row into a Mentor struct
// Expected columns: id, slug, name, title, company, field, location,
// years_of_experience, bio, expertise, availability, conversation_starters,
// is_visible, created_at, updated_at
func ScanMentor(row pgx.Row) (*Mentor, error) {
	var m Mentor
	var company, location, bio *string

	err := row.Scan(
		&m.ID,
		&m.Slug,
		&m.Name,
		&m.Title,
		&company,
		&m.Field,
		&location,
		&m.YearsOfExperience,
		&bio,
		&m.Expertise,
		&m.Availability,
		&m.ConversationStarters,
		&m.IsVisible,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if company != nil {
		m.Company = *company
	}
	if location != nil {
		m.Location = *location
	}
	if bio != nil {
		m.Bio = *bio
	}
	if m.Expertise == nil {
		m.Expertise = []string{}
	}
	if m.ConversationStarters == nil {
		m.ConversationStarters = []string{}
	}

	return &m, nil
}

// ScanMentors scans multiple PostgreSQL rows into a slice of Mentor structs
func ScanMentors(rows pgx.Rows) ([]*Mentor, error) {
	defer rows.Close()

	mentors := []*Mentor{}
	for rows.Next() {
		mentor, err := ScanMentor(rows)
		if err != nil {
			return nil, err
		}
		mentors = append(mentors, mentor)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return mentors, nil
}
