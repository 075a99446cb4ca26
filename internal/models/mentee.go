package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// Mentee represents a platform user seeking mentorship. The profile is
// captured once at signup and treated as immutable afterwards.
type Mentee struct {
	ID              string    `json:"id"`
	Name            string    `json:"name"`
	Email           string    `json:"email"`
	CareerField     string    `json:"careerField"`
	Goals           string    `json:"goals"`
	ExperienceLevel string    `json:"experienceLevel"`
	Interests       []string  `json:"interests"`
	Location        string    `json:"location"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ScanMentee scans a single PostgreSQL row into a Mentee struct
// Expected columns: id, name, email, career_field, goals, experience_level,
// interests, location, created_at
func ScanMentee(row pgx.Row) (*Mentee, error) {
	var m Mentee
	var goals, experienceLevel, location *string

	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Email,
		&m.CareerField,
		&goals,
		&experienceLevel,
		&m.Interests,
		&location,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if goals != nil {
		m.Goals = *goals
	}
	if experienceLevel != nil {
		m.ExperienceLevel = *experienceLevel
	}
	if location != nil {
		m.Location = *location
	}
	if m.Interests == nil {
		m.Interests = []string{}
	}

	return &m, nil
}
