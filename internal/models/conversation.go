package models

import (
	"time"

	"github.com/jackc/pgx/v5"
)

// ConversationStatus represents the state of a mentorship conversation
type ConversationStatus string

const (
	ConversationStatusPending ConversationStatus = "pending"
	ConversationStatusActive  ConversationStatus = "active"
	ConversationStatusClosed  ConversationStatus = "closed"
)

// SenderType identifies which side of a conversation authored a message
type SenderType string

const (
	SenderTypeMentee SenderType = "mentee"
	SenderTypeMentor SenderType = "mentor"
)

// Conversation is the messaging thread created once a request is approved.
// Participant names are denormalized for cheap list rendering.
type Conversation struct {
	ID         string             `json:"id"`
	MentorID   int                `json:"mentorId"`
	MentorName string             `json:"mentorName"`
	MenteeID   string             `json:"menteeId"`
	MenteeName string             `json:"menteeName"`
	Status     ConversationStatus `json:"status"`
	CreatedAt  time.Time          `json:"createdAt"`
	ExpiresAt  *time.Time         `json:"expiresAt"`
}

// ChatMessage is a single message in a conversation. Append-only; ordered by
// creation time ascending.
type ChatMessage struct {
	ID             string     `json:"id"`
	ConversationID string     `json:"conversationId"`
	SenderID       string     `json:"senderId"`
	SenderName     string     `json:"senderName"`
	SenderType     SenderType `json:"senderType"`
	Content        string     `json:"content"`
	CreatedAt      time.Time  `json:"timestamp"`
	Read           bool       `json:"read"`
}

// SendMessagePayload is the body for POST /api/v1/conversations/:id/messages
type SendMessagePayload struct {
	Content string `json:"message" binding:"required,max=5000"`
}

// ChatResponse is the response for GET /api/v1/chat/:id
type ChatResponse struct {
	Conversation *Conversation    `json:"conversation"`
	Messages     []ChatMessage    `json:"messages"`
	Participants ChatParticipants `json:"participants"`
}

// ChatParticipants names both sides of a conversation
type ChatParticipants struct {
	MentorID   int    `json:"mentorId"`
	MentorName string `json:"mentorName"`
	MenteeID   string `json:"menteeId"`
	MenteeName string `json:"menteeName"`
}

// ScanConversation scans a single PostgreSQL row into a Conversation struct
// Expected columns: id, mentor_id, mentor_name, mentee_id, mentee_name,
// status, created_at, expires_at
func ScanConversation(row pgx.Row) (*Conversation, error) {
	var c Conversation

	err := row.Scan(
		&c.ID,
		&c.MentorID,
		&c.MentorName,
		&c.MenteeID,
		&c.MenteeName,
		&c.Status,
		&c.CreatedAt,
		&c.ExpiresAt,
	)
	if err != nil {
		return nil, err
	}

	return &c, nil
}

// ScanMessage scans a single PostgreSQL row into a ChatMessage struct
// Expected columns: id, conversation_id, sender_id, sender_name, sender_type,
// content, created_at, read
func ScanMessage(row pgx.Row) (*ChatMessage, error) {
	var m ChatMessage

	err := row.Scan(
		&m.ID,
		&m.ConversationID,
		&m.SenderID,
		&m.SenderName,
		&m.SenderType,
		&m.Content,
		&m.CreatedAt,
		&m.Read,
	)
	if err != nil {
		return nil, err
	}

	return &m, nil
}

// ScanMessages scans multiple PostgreSQL rows into a slice of ChatMessage structs
func ScanMessages(rows pgx.Rows) ([]*ChatMessage, error) {
	defer rows.Close()

	messages := []*ChatMessage{}
	for rows.Next() {
		message, err := ScanMessage(rows)
		if err != nil {
			return nil, err
		}
		messages = append(messages, message)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return messages, nil
}
