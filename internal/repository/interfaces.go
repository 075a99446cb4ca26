package repository

import (
	"context"
	"time"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
)

// MentorRepositoryInterface defines the interface for mentor directory access
type MentorRepositoryInterface interface {
	GetAll(ctx context.Context, opts models.FilterOptions) ([]*models.Mentor, error)
	GetByID(ctx context.Context, id int, opts models.FilterOptions) (*models.Mentor, error)
	GetBySlug(ctx context.Context, slug string, opts models.FilterOptions) (*models.Mentor, error)
	Create(ctx context.Context, req *models.SaveMentorRequest) (*models.Mentor, error)
	Update(ctx context.Context, id int, req *models.SaveMentorRequest) (*models.Mentor, error)
	SetVisibility(ctx context.Context, id int, visible bool) error
	InvalidateCache()
}

// MenteeRepositoryInterface defines the interface for mentee profile access
type MenteeRepositoryInterface interface {
	Create(ctx context.Context, mentee *models.Mentee) (*models.Mentee, error)
	GetByID(ctx context.Context, id string) (*models.Mentee, error)
	GetByEmail(ctx context.Context, email string) (*models.Mentee, error)
}

// RequestRepositoryInterface defines the interface for mentorship request access
type RequestRepositoryInterface interface {
	Create(ctx context.Context, req *models.MentorshipRequest) (*models.MentorshipRequest, error)
	GetByID(ctx context.Context, id string) (*models.MentorshipRequest, error)
	GetByMentor(ctx context.Context, mentorID int, statuses []models.RequestStatus) ([]*models.MentorshipRequest, error)
	HasPendingForPair(ctx context.Context, menteeEmail string, mentorID int) (bool, error)
	HasRecentDecline(ctx context.Context, menteeEmail string, since time.Time) (bool, error)
	Approve(ctx context.Context, requestID string, mentorID int, conversationTTL time.Duration) (*models.MentorshipRequest, *models.Conversation, error)
	Decline(ctx context.Context, requestID string, mentorID int) (*models.MentorshipRequest, error)
	SweepExpired(ctx context.Context, now time.Time) ([]*models.MentorshipRequest, error)
}

// ConversationRepositoryInterface defines the interface for conversation access
type ConversationRepositoryInterface interface {
	GetByID(ctx context.Context, id string) (*models.Conversation, error)
	ListByMentor(ctx context.Context, mentorID int) ([]*models.Conversation, error)
	ListByMentee(ctx context.Context, menteeID string) ([]*models.Conversation, error)
	UpdateStatus(ctx context.Context, id string, status models.ConversationStatus) error
}

// MessageRepositoryInterface defines the interface for chat message access
type MessageRepositoryInterface interface {
	Create(ctx context.Context, msg *models.ChatMessage) (*models.ChatMessage, error)
	ListByConversation(ctx context.Context, conversationID string) ([]*models.ChatMessage, error)
	MarkRead(ctx context.Context, conversationID string, readerType models.SenderType) error
}

// MeetingRepositoryInterface defines the interface for meeting access
type MeetingRepositoryInterface interface {
	Create(ctx context.Context, meeting *models.Meeting) (*models.Meeting, error)
	GetByID(ctx context.Context, id string) (*models.Meeting, error)
	ListByConversation(ctx context.Context, conversationID string) ([]*models.Meeting, error)
	UpdateStatus(ctx context.Context, id string, status models.MeetingStatus) (*models.Meeting, error)
}

// AccountRepositoryInterface defines the interface for credential access
type AccountRepositoryInterface interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	GetByEmail(ctx context.Context, email string) (*models.Account, error)
	GetByID(ctx context.Context, id string) (*models.Account, error)
	GetByProfileID(ctx context.Context, role, profileID string) (*models.Account, error)
	LinkProfile(ctx context.Context, email, profileID string) (*models.Account, error)
}
