package services_test

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
)

// MockMentorRepository is a mock implementation of MentorRepositoryInterface
type MockMentorRepository struct {
	mock.Mock
}

func (m *MockMentorRepository) GetAll(ctx context.Context, opts models.FilterOptions) ([]*models.Mentor, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Mentor), args.Error(1)
}

func (m *MockMentorRepository) GetByID(ctx context.Context, id int, opts models.FilterOptions) (*models.Mentor, error) {
	args := m.Called(ctx, id, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}

func (m *MockMentorRepository) GetBySlug(ctx context.Context, slug string, opts models.FilterOptions) (*models.Mentor, error) {
	args := m.Called(ctx, slug, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}

func (m *MockMentorRepository) Create(ctx context.Context, req *models.SaveMentorRequest) (*models.Mentor, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}

func (m *MockMentorRepository) Update(ctx context.Context, id int, req *models.SaveMentorRequest) (*models.Mentor, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}

func (m *MockMentorRepository) SetVisibility(ctx context.Context, id int, visible bool) error {
	args := m.Called(ctx, id, visible)
	return args.Error(0)
}

func (m *MockMentorRepository) InvalidateCache() {
	m.Called()
}

// MockMenteeRepository is a mock implementation of MenteeRepositoryInterface
type MockMenteeRepository struct {
	mock.Mock
}

func (m *MockMenteeRepository) Create(ctx context.Context, mentee *models.Mentee) (*models.Mentee, error) {
	args := m.Called(ctx, mentee)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentee), args.Error(1)
}

func (m *MockMenteeRepository) GetByID(ctx context.Context, id string) (*models.Mentee, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentee), args.Error(1)
}

func (m *MockMenteeRepository) GetByEmail(ctx context.Context, email string) (*models.Mentee, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentee), args.Error(1)
}

// MockRequestRepository is a mock implementation of RequestRepositoryInterface
type MockRequestRepository struct {
	mock.Mock
}

func (m *MockRequestRepository) Create(ctx context.Context, req *models.MentorshipRequest) (*models.MentorshipRequest, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorshipRequest), args.Error(1)
}

func (m *MockRequestRepository) GetByID(ctx context.Context, id string) (*models.MentorshipRequest, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorshipRequest), args.Error(1)
}

func (m *MockRequestRepository) GetByMentor(ctx context.Context, mentorID int, statuses []models.RequestStatus) ([]*models.MentorshipRequest, error) {
	args := m.Called(ctx, mentorID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MentorshipRequest), args.Error(1)
}

func (m *MockRequestRepository) HasPendingForPair(ctx context.Context, menteeEmail string, mentorID int) (bool, error) {
	args := m.Called(ctx, menteeEmail, mentorID)
	return args.Bool(0), args.Error(1)
}

func (m *MockRequestRepository) HasRecentDecline(ctx context.Context, menteeEmail string, since time.Time) (bool, error) {
	args := m.Called(ctx, menteeEmail, since)
	return args.Bool(0), args.Error(1)
}

func (m *MockRequestRepository) Approve(ctx context.Context, requestID string, mentorID int, conversationTTL time.Duration) (*models.MentorshipRequest, *models.Conversation, error) {
	args := m.Called(ctx, requestID, mentorID, conversationTTL)
	var request *models.MentorshipRequest
	var conversation *models.Conversation
	if args.Get(0) != nil {
		request = args.Get(0).(*models.MentorshipRequest)
	}
	if args.Get(1) != nil {
		conversation = args.Get(1).(*models.Conversation)
	}
	return request, conversation, args.Error(2)
}

func (m *MockRequestRepository) Decline(ctx context.Context, requestID string, mentorID int) (*models.MentorshipRequest, error) {
	args := m.Called(ctx, requestID, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorshipRequest), args.Error(1)
}

func (m *MockRequestRepository) SweepExpired(ctx context.Context, now time.Time) ([]*models.MentorshipRequest, error) {
	args := m.Called(ctx, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.MentorshipRequest), args.Error(1)
}

// MockConversationRepository is a mock implementation of ConversationRepositoryInterface
type MockConversationRepository struct {
	mock.Mock
}

func (m *MockConversationRepository) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Conversation), args.Error(1)
}

func (m *MockConversationRepository) ListByMentor(ctx context.Context, mentorID int) ([]*models.Conversation, error) {
	args := m.Called(ctx, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Conversation), args.Error(1)
}

func (m *MockConversationRepository) ListByMentee(ctx context.Context, menteeID string) ([]*models.Conversation, error) {
	args := m.Called(ctx, menteeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Conversation), args.Error(1)
}

func (m *MockConversationRepository) UpdateStatus(ctx context.Context, id string, status models.ConversationStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

// MockMessageRepository is a mock implementation of MessageRepositoryInterface
type MockMessageRepository struct {
	mock.Mock
}

func (m *MockMessageRepository) Create(ctx context.Context, msg *models.ChatMessage) (*models.ChatMessage, error) {
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ChatMessage), args.Error(1)
}

func (m *MockMessageRepository) ListByConversation(ctx context.Context, conversationID string) ([]*models.ChatMessage, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ChatMessage), args.Error(1)
}

func (m *MockMessageRepository) MarkRead(ctx context.Context, conversationID string, readerType models.SenderType) error {
	args := m.Called(ctx, conversationID, readerType)
	return args.Error(0)
}

// MockMeetingRepository is a mock implementation of MeetingRepositoryInterface
type MockMeetingRepository struct {
	mock.Mock
}

func (m *MockMeetingRepository) Create(ctx context.Context, meeting *models.Meeting) (*models.Meeting, error) {
	args := m.Called(ctx, meeting)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) GetByID(ctx context.Context, id string) (*models.Meeting, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) ListByConversation(ctx context.Context, conversationID string) ([]*models.Meeting, error) {
	args := m.Called(ctx, conversationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Meeting), args.Error(1)
}

func (m *MockMeetingRepository) UpdateStatus(ctx context.Context, id string, status models.MeetingStatus) (*models.Meeting, error) {
	args := m.Called(ctx, id, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Meeting), args.Error(1)
}

// MockAccountRepository is a mock implementation of AccountRepositoryInterface
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	args := m.Called(ctx, account)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByEmail(ctx context.Context, email string) (*models.Account, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*models.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByProfileID(ctx context.Context, role, profileID string) (*models.Account, error) {
	args := m.Called(ctx, role, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

func (m *MockAccountRepository) LinkProfile(ctx context.Context, email, profileID string) (*models.Account, error) {
	args := m.Called(ctx, email, profileID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

// MockHTTPClient is a mock implementation of httpclient.Client
type MockHTTPClient struct {
	mock.Mock
}

func (m *MockHTTPClient) Post(url, contentType string, body io.Reader) (*http.Response, error) {
	args := m.Called(url, contentType, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func (m *MockHTTPClient) Get(url string) (*http.Response, error) {
	args := m.Called(url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}

func (m *MockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	args := m.Called(req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*http.Response), args.Error(1)
}
