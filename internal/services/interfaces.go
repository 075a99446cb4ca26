package services

import (
	"context"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/matching"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
)

// Participant identifies the session holder acting inside a conversation
type Participant struct {
	ID   string
	Name string
	Type models.SenderType
}

// AuthServiceInterface defines the interface for signup, login and sessions
type AuthServiceInterface interface {
	Signup(ctx context.Context, req *models.SignupRequest) (*models.SessionResponse, string, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.SessionResponse, string, error)
}

// MentorServiceInterface defines the interface for the mentor directory
type MentorServiceInterface interface {
	ListMentors(ctx context.Context, forceRefresh bool) ([]models.PublicMentorResponse, error)
	GetMentor(ctx context.Context, id int) (*models.PublicMentorResponse, error)
	GetMentorBySlug(ctx context.Context, slug string) (*models.PublicMentorResponse, error)
	CreateMentor(ctx context.Context, req *models.SaveMentorRequest) (*models.Mentor, error)
	UpdateMentor(ctx context.Context, id int, req *models.SaveMentorRequest) (*models.Mentor, error)
	SetMentorVisibility(ctx context.Context, id int, visible bool) error
	LinkMentorAccount(ctx context.Context, email string, mentorID int) (*models.Account, error)
}

// MatchingServiceInterface defines the interface for mentor matching
type MatchingServiceInterface interface {
	FindMatches(ctx context.Context, menteeID string) ([]matching.RankedMentor, error)
}

// RequestServiceInterface defines the interface for the request lifecycle
type RequestServiceInterface interface {
	Submit(ctx context.Context, payload *models.SubmitRequestPayload) (*models.MentorshipRequest, error)
	GetRequests(ctx context.Context, mentorID int, group models.RequestGroup) (*models.RequestsResponse, error)
	GetRequest(ctx context.Context, mentorID int, requestID string) (*models.MentorshipRequest, error)
	Approve(ctx context.Context, mentorID int, requestID string) (*models.MentorshipRequest, *models.Conversation, error)
	Decline(ctx context.Context, mentorID int, requestID string) (*models.MentorshipRequest, error)
	CanRequestAgain(ctx context.Context, menteeEmail string) (bool, error)
	SweepExpired(ctx context.Context) (int, error)
}

// ConversationServiceInterface defines the interface for messaging
type ConversationServiceInterface interface {
	SendMessage(ctx context.Context, conversationID string, sender Participant, content string) (*models.ChatMessage, error)
	GetChat(ctx context.Context, conversationID string, viewer Participant) (*models.ChatResponse, error)
	Close(ctx context.Context, conversationID string, mentorID int, isAdmin bool) error
}

// MeetingServiceInterface defines the interface for meeting scheduling
type MeetingServiceInterface interface {
	Schedule(ctx context.Context, mentorID int, conversationID string, payload *models.ScheduleMeetingPayload) (*models.Meeting, error)
	ListByConversation(ctx context.Context, conversationID string, mentorID int) ([]*models.Meeting, error)
	UpdateStatus(ctx context.Context, mentorID int, meetingID string, status models.MeetingStatus) (*models.Meeting, error)
}
