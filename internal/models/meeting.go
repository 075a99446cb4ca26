package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// MeetingType represents how a meeting takes place
type MeetingType string

const (
	MeetingTypeVideo    MeetingType = "video"
	MeetingTypePhone    MeetingType = "phone"
	MeetingTypeInPerson MeetingType = "in-person"
)

// MeetingStatus represents the state of a scheduled meeting
type MeetingStatus string

const (
	MeetingStatusScheduled   MeetingStatus = "scheduled"
	MeetingStatusCompleted   MeetingStatus = "completed"
	MeetingStatusCancelled   MeetingStatus = "cancelled"
	MeetingStatusRescheduled MeetingStatus = "rescheduled"
)

// CanTransitionTo checks if a meeting status transition is valid
func (s MeetingStatus) CanTransitionTo(newStatus MeetingStatus) bool {
	switch s {
	case MeetingStatusScheduled:
		return newStatus == MeetingStatusCompleted ||
			newStatus == MeetingStatusCancelled ||
			newStatus == MeetingStatusRescheduled
	case MeetingStatusRescheduled:
		return newStatus == MeetingStatusCompleted || newStatus == MeetingStatusCancelled
	default:
		return false
	}
}

// Meeting is a session scheduled by a mentor inside an active conversation
type Meeting struct {
	ID              string        `json:"id"`
	ConversationID  string        `json:"conversationId"`
	MentorID        int           `json:"mentorId"`
	MenteeID        string        `json:"menteeId"`
	Title           string        `json:"title"`
	Type            MeetingType   `json:"type"`
	DurationMinutes int           `json:"duration"`
	ScheduledAt     time.Time     `json:"scheduledAt"`
	Status          MeetingStatus `json:"status"`
	CreatedAt       time.Time     `json:"createdAt"`
}

// ScheduleMeetingPayload is the body for POST /api/v1/mentor/conversations/:id/meetings
type ScheduleMeetingPayload struct {
	Title           string    `json:"title" binding:"required,max=200"`
	Type            string    `json:"type" binding:"required,oneof=video phone in-person"`
	DurationMinutes int       `json:"duration" binding:"required,min=15,max=240"`
	ScheduledAt     time.Time `json:"scheduledAt" binding:"required"`
}

// UpdateMeetingStatusPayload is the body for POST /api/v1/mentor/meetings/:id/status
type UpdateMeetingStatusPayload struct {
	Status MeetingStatus `json:"status" binding:"required,oneof=completed cancelled rescheduled"`
}

// ScanMeeting scans a single PostgreSQL row into a Meeting struct
// Expected columns: id, conversation_id, mentor_id, mentee_id, title, type,
// duration_minutes, scheduled_at, status, created_at
func ScanMeeting(row pgx.Row) (*Meeting, error) {
	var m Meeting

	err := row.Scan(
		&m.ID,
		&m.ConversationID,
		&m.MentorID,
		&m.MenteeID,
		&m.Title,
		&m.Type,
		&m.DurationMinutes,
		&m.ScheduledAt,
		&m.Status,
		&m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// ScanMeetings scans multiple PostgreSQL rows into a slice of Meeting structs
func ScanMeetings(rows pgx.Rows) ([]*Meeting, error) {
	defer rows.Close()

	meetings := []*Meeting{}
	for rows.Next() {
		meeting, err := ScanMeeting(rows)
		if err != nil {
			return nil, err
		}
		meetings = append(meetings, meeting)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return meetings, nil
}
