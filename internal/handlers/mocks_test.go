package handlers_test

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/matching"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/middleware"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/jwt"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/logger"
)

func init() {
	gin.SetMode(gin.TestMode)

	_ = logger.Initialize(logger.Config{
		Level:       "info",
		Environment: "test",
	})
}

// withSession injects session claims the way SessionMiddleware would
func withSession(claims *jwt.SessionClaims) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.SessionContextKey, claims)
		c.Next()
	}
}

func mentorSession(profileID string) *jwt.SessionClaims {
	return &jwt.SessionClaims{
		AccountID: "acct-2",
		ProfileID: profileID,
		Email:     "amara@example.com",
		Name:      "Amara Okafor",
		Role:      models.RoleMentor,
	}
}

// MockRequestService is a mock implementation of RequestServiceInterface
type MockRequestService struct {
	mock.Mock
}

func (m *MockRequestService) Submit(ctx context.Context, payload *models.SubmitRequestPayload) (*models.MentorshipRequest, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorshipRequest), args.Error(1)
}

func (m *MockRequestService) GetRequests(ctx context.Context, mentorID int, group models.RequestGroup) (*models.RequestsResponse, error) {
	args := m.Called(ctx, mentorID, group)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RequestsResponse), args.Error(1)
}

func (m *MockRequestService) GetRequest(ctx context.Context, mentorID int, requestID string) (*models.MentorshipRequest, error) {
	args := m.Called(ctx, mentorID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorshipRequest), args.Error(1)
}

func (m *MockRequestService) Approve(ctx context.Context, mentorID int, requestID string) (*models.MentorshipRequest, *models.Conversation, error) {
	args := m.Called(ctx, mentorID, requestID)
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

func (m *MockRequestService) Decline(ctx context.Context, mentorID int, requestID string) (*models.MentorshipRequest, error) {
	args := m.Called(ctx, mentorID, requestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MentorshipRequest), args.Error(1)
}

func (m *MockRequestService) CanRequestAgain(ctx context.Context, menteeEmail string) (bool, error) {
	args := m.Called(ctx, menteeEmail)
	return args.Bool(0), args.Error(1)
}

func (m *MockRequestService) SweepExpired(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

// MockMentorService is a mock implementation of MentorServiceInterface
type MockMentorService struct {
	mock.Mock
}

func (m *MockMentorService) ListMentors(ctx context.Context, forceRefresh bool) ([]models.PublicMentorResponse, error) {
	args := m.Called(ctx, forceRefresh)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.PublicMentorResponse), args.Error(1)
}

func (m *MockMentorService) GetMentor(ctx context.Context, id int) (*models.PublicMentorResponse, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PublicMentorResponse), args.Error(1)
}

func (m *MockMentorService) GetMentorBySlug(ctx context.Context, slug string) (*models.PublicMentorResponse, error) {
	args := m.Called(ctx, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.PublicMentorResponse), args.Error(1)
}

func (m *MockMentorService) CreateMentor(ctx context.Context, req *models.SaveMentorRequest) (*models.Mentor, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}

func (m *MockMentorService) UpdateMentor(ctx context.Context, id int, req *models.SaveMentorRequest) (*models.Mentor, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Mentor), args.Error(1)
}

func (m *MockMentorService) SetMentorVisibility(ctx context.Context, id int, visible bool) error {
	args := m.Called(ctx, id, visible)
	return args.Error(0)
}

func (m *MockMentorService) LinkMentorAccount(ctx context.Context, email string, mentorID int) (*models.Account, error) {
	args := m.Called(ctx, email, mentorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Account), args.Error(1)
}

// MockMatchingService is a mock implementation of MatchingServiceInterface
type MockMatchingService struct {
	mock.Mock
}

func (m *MockMatchingService) FindMatches(ctx context.Context, menteeID string) ([]matching.RankedMentor, error) {
	args := m.Called(ctx, menteeID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]matching.RankedMentor), args.Error(1)
}
