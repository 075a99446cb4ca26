package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/services"
	apperrors "github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/errors"
)

func newMeetingService() (*services.MeetingService, *MockMeetingRepository, *MockConversationRepository, *MockMenteeRepository) {
	mockMeetings := new(MockMeetingRepository)
	mockConversations := new(MockConversationRepository)
	mockMentees := new(MockMenteeRepository)
	// Empty webhook URL skips notification delivery
	service := services.NewMeetingService(mockMeetings, mockConversations, mockMentees, new(MockHTTPClient), "")
	return service, mockMeetings, mockConversations, mockMentees
}

func TestMeetingService_Schedule(t *testing.T) {
	service, mockMeetings, mockConversations, mockMentees := newMeetingService()
	ctx := context.Background()

	scheduledAt := time.Now().Add(72 * time.Hour)
	payload := &models.ScheduleMeetingPayload{
		Title:           "Intro call",
		Type:            "video",
		DurationMinutes: 30,
		ScheduledAt:     scheduledAt,
	}

	mockConversations.On("GetByID", ctx, "conv-1").Return(activeConversation(), nil).Once()
	mockMeetings.On("Create", ctx, mock.MatchedBy(func(m *models.Meeting) bool {
		return m.ConversationID == "conv-1" &&
			m.MentorID == 7 &&
			m.MenteeID == "mentee-1" &&
			m.Type == models.MeetingTypeVideo &&
			m.DurationMinutes == 30
	})).Return(&models.Meeting{
		ID:             "meet-1",
		ConversationID: "conv-1",
		MentorID:       7,
		MenteeID:       "mentee-1",
		Title:          "Intro call",
		Type:           models.MeetingTypeVideo,
		Status:         models.MeetingStatusScheduled,
		ScheduledAt:    scheduledAt,
	}, nil).Once()
	mockMentees.On("GetByID", ctx, "mentee-1").
		Return(&models.Mentee{ID: "mentee-1", Name: "Kofi Annan", Email: "kofi@example.com"}, nil).Once()

	meeting, err := service.Schedule(ctx, 7, "conv-1", payload)
	assert.NoError(t, err)
	assert.Equal(t, "meet-1", meeting.ID)
	assert.Equal(t, models.MeetingStatusScheduled, meeting.Status)
	mockMeetings.AssertExpectations(t)
}

func TestMeetingService_Schedule_WrongMentor(t *testing.T) {
	service, mockMeetings, mockConversations, _ := newMeetingService()
	ctx := context.Background()

	mockConversations.On("GetByID", ctx, "conv-1").Return(activeConversation(), nil).Once()

	meeting, err := service.Schedule(ctx, 8, "conv-1", &models.ScheduleMeetingPayload{
		Title: "Intro call", Type: "video", DurationMinutes: 30, ScheduledAt: time.Now(),
	})
	assert.Nil(t, meeting)
	assert.ErrorIs(t, err, services.ErrAccessDenied)
	mockMeetings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestMeetingService_Schedule_ClosedConversation(t *testing.T) {
	service, _, mockConversations, _ := newMeetingService()
	ctx := context.Background()

	closed := activeConversation()
	closed.Status = models.ConversationStatusClosed
	mockConversations.On("GetByID", ctx, "conv-1").Return(closed, nil).Once()

	meeting, err := service.Schedule(ctx, 7, "conv-1", &models.ScheduleMeetingPayload{
		Title: "Intro call", Type: "video", DurationMinutes: 30, ScheduledAt: time.Now(),
	})
	assert.Nil(t, meeting)
	assert.ErrorIs(t, err, services.ErrConversationNotActive)
}

func TestMeetingService_ListByConversation(t *testing.T) {
	service, mockMeetings, mockConversations, _ := newMeetingService()
	ctx := context.Background()

	meetings := []*models.Meeting{
		{ID: "meet-1", ConversationID: "conv-1", MentorID: 7},
		{ID: "meet-2", ConversationID: "conv-1", MentorID: 7},
	}
	mockConversations.On("GetByID", ctx, "conv-1").Return(activeConversation(), nil).Once()
	mockMeetings.On("ListByConversation", ctx, "conv-1").Return(meetings, nil).Once()

	got, err := service.ListByConversation(ctx, "conv-1", 7)
	assert.NoError(t, err)
	assert.Len(t, got, 2)
	mockMeetings.AssertExpectations(t)
}

func TestMeetingService_UpdateStatus(t *testing.T) {
	service, mockMeetings, _, _ := newMeetingService()
	ctx := context.Background()

	mockMeetings.On("GetByID", ctx, "meet-1").
		Return(&models.Meeting{ID: "meet-1", MentorID: 7, Status: models.MeetingStatusScheduled}, nil).Once()
	mockMeetings.On("UpdateStatus", ctx, "meet-1", models.MeetingStatusCompleted).
		Return(&models.Meeting{ID: "meet-1", MentorID: 7, Status: models.MeetingStatusCompleted}, nil).Once()

	meeting, err := service.UpdateStatus(ctx, 7, "meet-1", models.MeetingStatusCompleted)
	assert.NoError(t, err)
	assert.Equal(t, models.MeetingStatusCompleted, meeting.Status)
	mockMeetings.AssertExpectations(t)
}

func TestMeetingService_UpdateStatus_InvalidTransition(t *testing.T) {
	service, mockMeetings, _, _ := newMeetingService()
	ctx := context.Background()

	mockMeetings.On("GetByID", ctx, "meet-1").
		Return(&models.Meeting{ID: "meet-1", MentorID: 7, Status: models.MeetingStatusCompleted}, nil).Once()
	mockMeetings.On("UpdateStatus", ctx, "meet-1", models.MeetingStatusCancelled).
		Return(nil, apperrors.ConflictError("meeting is completed")).Once()

	meeting, err := service.UpdateStatus(ctx, 7, "meet-1", models.MeetingStatusCancelled)
	assert.Nil(t, meeting)
	assert.ErrorIs(t, err, services.ErrInvalidTransition)
}

func TestMeetingService_UpdateStatus_WrongMentor(t *testing.T) {
	service, mockMeetings, _, _ := newMeetingService()
	ctx := context.Background()

	mockMeetings.On("GetByID", ctx, "meet-1").
		Return(&models.Meeting{ID: "meet-1", MentorID: 7, Status: models.MeetingStatusScheduled}, nil).Once()

	meeting, err := service.UpdateStatus(ctx, 8, "meet-1", models.MeetingStatusCompleted)
	assert.Nil(t, meeting)
	assert.ErrorIs(t, err, services.ErrAccessDenied)
}
