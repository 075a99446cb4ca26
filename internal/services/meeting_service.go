package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/notifications"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/repository"
	apperrors "github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/errors"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/httpclient"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/logger"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/metrics"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/notify"
)

// MeetingService schedules mentor sessions inside active conversations
type MeetingService struct {
	meetings      repository.MeetingRepositoryInterface
	conversations repository.ConversationRepositoryInterface
	mentees       repository.MenteeRepositoryInterface
	httpClient    httpclient.Client
	webhookURL    string
}

var _ MeetingServiceInterface = (*MeetingService)(nil)

// NewMeetingService creates a new meeting service
func NewMeetingService(
	meetings repository.MeetingRepositoryInterface,
	conversations repository.ConversationRepositoryInterface,
	mentees repository.MenteeRepositoryInterface,
	httpClient httpclient.Client,
	webhookURL string,
) *MeetingService {
	return &MeetingService{
		meetings:      meetings,
		conversations: conversations,
		mentees:       mentees,
		httpClient:    httpClient,
		webhookURL:    webhookURL,
	}
}

// Schedule creates a meeting inside an active conversation owned by the
// mentor and notifies the mentee
func (s *MeetingService) Schedule(ctx context.Context, mentorID int, conversationID string, payload *models.ScheduleMeetingPayload) (*models.Meeting, error) {
	conversation, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}

	if conversation.MentorID != mentorID {
		return nil, ErrAccessDenied
	}
	if conversation.Status != models.ConversationStatusActive {
		return nil, fmt.Errorf("%w: conversation is %s", ErrConversationNotActive, conversation.Status)
	}

	meeting, err := s.meetings.Create(ctx, &models.Meeting{
		ID:              uuid.NewString(),
		ConversationID:  conversationID,
		MentorID:        mentorID,
		MenteeID:        conversation.MenteeID,
		Title:           payload.Title,
		Type:            models.MeetingType(payload.Type),
		DurationMinutes: payload.DurationMinutes,
		ScheduledAt:     payload.ScheduledAt,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to schedule meeting: %w", err)
	}

	metrics.MeetingsScheduled.WithLabelValues(string(models.MeetingStatusScheduled)).Inc()
	logger.Info("Meeting scheduled",
		zap.String("meeting_id", meeting.ID),
		zap.String("conversation_id", conversationID))

	s.notifyMentee(ctx, conversation, meeting)

	return meeting, nil
}

// ListByConversation returns a conversation's meetings after verifying
// mentor ownership
func (s *MeetingService) ListByConversation(ctx context.Context, conversationID string, mentorID int) ([]*models.Meeting, error) {
	conversation, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	if conversation.MentorID != mentorID {
		return nil, ErrAccessDenied
	}

	meetings, err := s.meetings.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list meetings: %w", err)
	}
	return meetings, nil
}

// UpdateStatus moves a meeting between lifecycle states after verifying
// mentor ownership
func (s *MeetingService) UpdateStatus(ctx context.Context, mentorID int, meetingID string, status models.MeetingStatus) (*models.Meeting, error) {
	meeting, err := s.meetings.GetByID(ctx, meetingID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrMeetingNotFound
		}
		return nil, fmt.Errorf("failed to load meeting: %w", err)
	}
	if meeting.MentorID != mentorID {
		return nil, ErrAccessDenied
	}

	updated, err := s.meetings.UpdateStatus(ctx, meetingID, status)
	if err != nil {
		switch {
		case apperrors.Is(err, apperrors.ErrNotFound):
			return nil, ErrMeetingNotFound
		case apperrors.Is(err, apperrors.ErrConflict):
			return nil, fmt.Errorf("%w: %v", ErrInvalidTransition, err)
		default:
			return nil, err
		}
	}

	metrics.MeetingsScheduled.WithLabelValues(string(status)).Inc()
	return updated, nil
}

// notifyMentee fires the meeting-scheduled notification to the mentee
func (s *MeetingService) notifyMentee(ctx context.Context, conversation *models.Conversation, meeting *models.Meeting) {
	mentee, err := s.mentees.GetByID(ctx, conversation.MenteeID)
	if err != nil {
		logger.LogError(err, "Failed to resolve mentee for meeting notification",
			zap.String("mentee_id", conversation.MenteeID),
			zap.String("meeting_id", meeting.ID))
		return
	}

	payload := notifications.MeetingScheduled(mentee.Email, mentee.Name, conversation.MentorName, meeting)
	notify.PostAsync(s.webhookURL, payload.Template, payload, s.httpClient)
	metrics.NotificationsGenerated.WithLabelValues(payload.Template).Inc()
}
