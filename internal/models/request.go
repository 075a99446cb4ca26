package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// RequestStatus represents the status of a mentorship request
type RequestStatus string

const (
	RequestStatusPending  RequestStatus = "pending"
	RequestStatusApproved RequestStatus = "approved"
	RequestStatusDeclined RequestStatus = "declined"
	RequestStatusExpired  RequestStatus = "expired"
)

// ActiveStatuses are statuses shown on the active requests page
var ActiveStatuses = []RequestStatus{RequestStatusPending}

// PastStatuses are statuses shown on the past requests page
var PastStatuses = []RequestStatus{RequestStatusApproved, RequestStatusDeclined, RequestStatusExpired}

// IsTerminalStatus returns true if the status is terminal (no further transitions allowed)
func (s RequestStatus) IsTerminalStatus() bool {
	return s == RequestStatusApproved || s == RequestStatusDeclined || s == RequestStatusExpired
}

// CanTransitionTo checks if a status transition is valid. All transitions are
// one-directional out of pending; terminal statuses never change.
func (s RequestStatus) CanTransitionTo(newStatus RequestStatus) bool {
	if s.IsTerminalStatus() {
		return false
	}

	switch s {
	case RequestStatusPending:
		return newStatus == RequestStatusApproved ||
			newStatus == RequestStatusDeclined ||
			newStatus == RequestStatusExpired
	default:
		return false
	}
}

// PreferredFrequency values accepted on a request
const (
	FrequencyWeekly   = "weekly"
	FrequencyBiweekly = "biweekly"
	FrequencyMonthly  = "monthly"
)

// MentorshipRequest represents a mentee's request for a mentorship
// connection. A single entity covers the whole lifecycle: it is created
// pending with a fixed expiry window, and leaves pending exactly once.
type MentorshipRequest struct {
	ID                 string        `json:"id"`
	MenteeID           string        `json:"menteeId"`
	MenteeName         string        `json:"menteeName"`
	MenteeEmail        string        `json:"menteeEmail"`
	MentorID           int           `json:"mentorId"`
	Message            string        `json:"message"`
	TimeCommitment     string        `json:"timeCommitment"`
	PreferredFrequency string        `json:"preferredFrequency"`
	Status             RequestStatus `json:"status"`
	CreatedAt          time.Time     `json:"createdAt"`
	ExpiresAt          time.Time     `json:"expiresAt"`
	ApprovedAt         *time.Time    `json:"approvedAt"`
	DeclinedAt         *time.Time    `json:"declinedAt"`
	ConversationID     *string       `json:"conversationId"`
}

// SubmitRequestPayload is the body for POST /api/v1/mentee-signup
type SubmitRequestPayload struct {
	Name               string `json:"name" binding:"required,max=200"`
	Email              string `json:"email" binding:"required,email"`
	Field              string `json:"field" binding:"required"`
	CareerQuestion     string `json:"careerQuestion" binding:"required,max=5000"`
	MentorID           int    `json:"mentorId" binding:"required"`
	Experience         string `json:"experience" binding:"max=100"`
	Goals              string `json:"goals" binding:"max=5000"`
	TimeCommitment     string `json:"timeCommitment" binding:"max=100"`
	PreferredFrequency string `json:"preferredFrequency" binding:"omitempty,oneof=weekly biweekly monthly"`
}

// RequestsResponse is the response for listing requests
type RequestsResponse struct {
	Requests []MentorshipRequest `json:"requests"`
	Total    int                 `json:"total"`
}

// RequestGroup represents the type of requests to fetch
type RequestGroup string

const (
	RequestGroupActive RequestGroup = "active"
	RequestGroupPast   RequestGroup = "past"
)

// GetStatuses returns the statuses for a request group
func (g RequestGroup) GetStatuses() []RequestStatus {
	switch g {
	case RequestGroupActive:
		return ActiveStatuses
	case RequestGroupPast:
		return PastStatuses
	default:
		return nil
	}
}

// ScanRequest scans a single PostgreSQL row into a MentorshipRequest struct
// Expected columns: id, mentee_id, mentee_name, mentee_email, mentor_id,
// message, time_commitment, preferred_frequency, status, created_at,
// expires_at, approved_at, declined_at, conversation_id
func ScanRequest(row pgx.Row) (*MentorshipRequest, error) {
	var r MentorshipRequest
	var message, timeCommitment, frequency *string

	err := row.Scan(
		&r.ID,
		&r.MenteeID,
		&r.MenteeName,
		&r.MenteeEmail,
		&r.MentorID,
		&message,
		&timeCommitment,
		&frequency,
		&r.Status,
		&r.CreatedAt,
		&r.ExpiresAt,
		&r.ApprovedAt,
		&r.DeclinedAt,
		&r.ConversationID,
	)
	if err != nil {
		return nil, err
	}

	if message != nil {
		r.Message = *message
	}
	if timeCommitment != nil {
		r.TimeCommitment = *timeCommitment
	}
	if frequency != nil {
		r.PreferredFrequency = *frequency
	}

	return &r, nil
}

// ScanRequests scans multiple PostgreSQL rows into a slice of MentorshipRequest structs
func ScanRequests(rows pgx.Rows) ([]*MentorshipRequest, error) {
	defer rows.Close()

	requests := []*MentorshipRequest{}
	for rows.Next() {
		request, err := ScanRequest(rows)
		if err != nil {
			return nil, err
		}
		requests = append(requests, request)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}
