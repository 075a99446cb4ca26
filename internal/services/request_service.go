package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/config"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/notifications"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/repository"
	apperrors "github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/errors"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/httpclient"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/logger"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/metrics"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/notify"
)

// RequestService drives the mentorship request lifecycle. A request is
// created pending with a fixed expiry window and leaves pending exactly once,
// to approved, declined or expired.
type RequestService struct {
	requests     repository.RequestRepositoryInterface
	mentors      repository.MentorRepositoryInterface
	mentees      repository.MenteeRepositoryInterface
	accounts     repository.AccountRepositoryInterface
	httpClient   httpclient.Client
	expiryWindow time.Duration
	cooldown     time.Duration
	convTTL      time.Duration
	webhookURL   string
	baseURL      string
}

var _ RequestServiceInterface = (*RequestService)(nil)

// NewRequestService creates a new request lifecycle service
func NewRequestService(
	requests repository.RequestRepositoryInterface,
	mentors repository.MentorRepositoryInterface,
	mentees repository.MenteeRepositoryInterface,
	accounts repository.AccountRepositoryInterface,
	httpClient httpclient.Client,
	cfg *config.Config,
) *RequestService {
	return &RequestService{
		requests:     requests,
		mentors:      mentors,
		mentees:      mentees,
		accounts:     accounts,
		httpClient:   httpClient,
		expiryWindow: time.Duration(cfg.Requests.ExpiryHours) * time.Hour,
		cooldown:     time.Duration(cfg.Requests.DeclineCooldownDays) * 24 * time.Hour,
		convTTL:      time.Duration(cfg.Conversations.TTLDays) * 24 * time.Hour,
		webhookURL:   cfg.Notifications.EmailWebhookURL,
		baseURL:      cfg.Server.BaseURL,
	}
}

// Submit creates a pending request from the combined mentee signup form.
// The mentee profile is created on first contact and reused afterwards.
func (s *RequestService) Submit(ctx context.Context, payload *models.SubmitRequestPayload) (*models.MentorshipRequest, error) {
	if !models.IsValidCareerField(payload.Field) {
		return nil, fmt.Errorf("%w: unknown career field %q", ErrInvalidInput, payload.Field)
	}

	mentor, err := s.mentors.GetByID(ctx, payload.MentorID, models.FilterOptions{OnlyVisible: true})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrMentorNotFound
		}
		return nil, fmt.Errorf("failed to load mentor: %w", err)
	}

	allowed, err := s.CanRequestAgain(ctx, payload.Email)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, ErrCooldownActive
	}

	duplicate, err := s.requests.HasPendingForPair(ctx, payload.Email, payload.MentorID)
	if err != nil {
		return nil, fmt.Errorf("failed to check pending requests: %w", err)
	}
	if duplicate {
		return nil, ErrDuplicateRequest
	}

	mentee, err := s.getOrCreateMentee(ctx, payload)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	request, err := s.requests.Create(ctx, &models.MentorshipRequest{
		ID:                 uuid.NewString(),
		MenteeID:           mentee.ID,
		MenteeName:         payload.Name,
		MenteeEmail:        payload.Email,
		MentorID:           payload.MentorID,
		Message:            payload.CareerQuestion,
		TimeCommitment:     payload.TimeCommitment,
		PreferredFrequency: payload.PreferredFrequency,
		ExpiresAt:          now.Add(s.expiryWindow),
	})
	if err != nil {
		if apperrors.Is(err, apperrors.ErrConflict) {
			return nil, ErrDuplicateRequest
		}
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	metrics.MentorshipRequestsSubmitted.Inc()
	logger.Info("Mentorship request submitted",
		zap.String("request_id", request.ID),
		zap.Int("mentor_id", request.MentorID))

	s.notifyMentor(ctx, mentor, request)

	return request, nil
}

// GetRequests returns a mentor's requests for the active or past view
func (s *RequestService) GetRequests(ctx context.Context, mentorID int, group models.RequestGroup) (*models.RequestsResponse, error) {
	statuses := group.GetStatuses()
	if statuses == nil {
		return nil, fmt.Errorf("%w: unknown request group %q", ErrInvalidInput, group)
	}

	requests, err := s.requests.GetByMentor(ctx, mentorID, statuses)
	if err != nil {
		return nil, fmt.Errorf("failed to list requests: %w", err)
	}

	response := &models.RequestsResponse{
		Requests: make([]models.MentorshipRequest, 0, len(requests)),
		Total:    len(requests),
	}
	for _, r := range requests {
		response.Requests = append(response.Requests, *r)
	}
	return response, nil
}

// GetRequest returns a single request after verifying mentor ownership
func (s *RequestService) GetRequest(ctx context.Context, mentorID int, requestID string) (*models.MentorshipRequest, error) {
	request, err := s.requests.GetByID(ctx, requestID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get request: %w", err)
	}

	if request.MentorID != mentorID {
		return nil, ErrAccessDenied
	}
	return request, nil
}

// Approve transitions a pending request to approved and opens the
// conversation
func (s *RequestService) Approve(ctx context.Context, mentorID int, requestID string) (*models.MentorshipRequest, *models.Conversation, error) {
	request, conversation, err := s.requests.Approve(ctx, requestID, mentorID, s.convTTL)
	if err != nil {
		return nil, nil, s.mapLifecycleError(err)
	}

	metrics.MentorshipRequestTransitions.WithLabelValues(
		string(models.RequestStatusPending), string(models.RequestStatusApproved)).Inc()

	if mentor, mErr := s.mentors.GetByID(ctx, mentorID, models.FilterOptions{}); mErr == nil {
		payload := notifications.RequestApproved(request, mentor, s.baseURL+"/chat/"+conversation.ID)
		notify.PostAsync(s.webhookURL, payload.Template, payload, s.httpClient)
		metrics.NotificationsGenerated.WithLabelValues(payload.Template).Inc()
	} else {
		logger.LogError(mErr, "Failed to load mentor for approval notification",
			zap.Int("mentor_id", mentorID))
	}

	return request, conversation, nil
}

// Decline transitions a pending request to declined. The mentee enters the
// cooldown window from declined_at.
func (s *RequestService) Decline(ctx context.Context, mentorID int, requestID string) (*models.MentorshipRequest, error) {
	request, err := s.requests.Decline(ctx, requestID, mentorID)
	if err != nil {
		return nil, s.mapLifecycleError(err)
	}

	metrics.MentorshipRequestTransitions.WithLabelValues(
		string(models.RequestStatusPending), string(models.RequestStatusDeclined)).Inc()

	if mentor, mErr := s.mentors.GetByID(ctx, mentorID, models.FilterOptions{}); mErr == nil {
		payload := notifications.RequestDeclined(request, mentor)
		notify.PostAsync(s.webhookURL, payload.Template, payload, s.httpClient)
		metrics.NotificationsGenerated.WithLabelValues(payload.Template).Inc()
	}

	return request, nil
}

// CanRequestAgain reports whether the mentee is outside the decline cooldown
// window
func (s *RequestService) CanRequestAgain(ctx context.Context, menteeEmail string) (bool, error) {
	cutoff := time.Now().UTC().Add(-s.cooldown)
	declined, err := s.requests.HasRecentDecline(ctx, menteeEmail, cutoff)
	if err != nil {
		return false, fmt.Errorf("failed to check cooldown: %w", err)
	}
	return !declined, nil
}

// SweepExpired flips every pending request past its expiry to expired and
// returns the number of rows flipped. Safe to run concurrently; a request
// already resolved is never touched.
func (s *RequestService) SweepExpired(ctx context.Context) (int, error) {
	swept, err := s.requests.SweepExpired(ctx, time.Now().UTC())
	if err != nil {
		return 0, fmt.Errorf("failed to sweep expired requests: %w", err)
	}

	if len(swept) == 0 {
		return 0, nil
	}

	metrics.ExpiredRequestsSwept.Add(float64(len(swept)))
	for range swept {
		metrics.MentorshipRequestTransitions.WithLabelValues(
			string(models.RequestStatusPending), string(models.RequestStatusExpired)).Inc()
	}

	for _, request := range swept {
		mentorName := ""
		if mentor, mErr := s.mentors.GetByID(ctx, request.MentorID, models.FilterOptions{}); mErr == nil {
			mentorName = mentor.Name
		}
		payload := notifications.RequestExpired(request, mentorName)
		notify.PostAsync(s.webhookURL, payload.Template, payload, s.httpClient)
		metrics.NotificationsGenerated.WithLabelValues(payload.Template).Inc()
	}

	logger.Info("Expired requests swept", zap.Int("count", len(swept)))
	return len(swept), nil
}

// getOrCreateMentee resolves the mentee profile behind a submission,
// creating it on first contact
func (s *RequestService) getOrCreateMentee(ctx context.Context, payload *models.SubmitRequestPayload) (*models.Mentee, error) {
	mentee, err := s.mentees.GetByEmail(ctx, payload.Email)
	if err == nil {
		return mentee, nil
	}
	if !apperrors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up mentee: %w", err)
	}

	mentee, err = s.mentees.Create(ctx, &models.Mentee{
		ID:              uuid.NewString(),
		Name:            payload.Name,
		Email:           payload.Email,
		CareerField:     payload.Field,
		Goals:           payload.Goals,
		ExperienceLevel: payload.Experience,
		Interests:       []string{},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create mentee profile: %w", err)
	}
	return mentee, nil
}

// notifyMentor fires the request-received notification when the mentor has a
// linked account with a deliverable address
func (s *RequestService) notifyMentor(ctx context.Context, mentor *models.Mentor, request *models.MentorshipRequest) {
	account, err := s.accounts.GetByProfileID(ctx, models.RoleMentor, strconv.Itoa(mentor.ID))
	if err != nil {
		if !apperrors.Is(err, apperrors.ErrNotFound) {
			logger.LogError(err, "Failed to resolve mentor account for notification",
				zap.Int("mentor_id", mentor.ID))
		}
		return
	}

	payload := notifications.RequestReceived(account.Email, mentor, request)
	notify.PostAsync(s.webhookURL, payload.Template, payload, s.httpClient)
	metrics.NotificationsGenerated.WithLabelValues(payload.Template).Inc()
}

// mapLifecycleError translates repository errors on approve/decline into
// service sentinels
func (s *RequestService) mapLifecycleError(err error) error {
	switch {
	case apperrors.Is(err, apperrors.ErrNotFound):
		return ErrRequestNotFound
	case apperrors.Is(err, apperrors.ErrAccessDenied):
		return ErrAccessDenied
	case apperrors.Is(err, apperrors.ErrConflict):
		return fmt.Errorf("%w: %v", ErrRequestResolved, err)
	default:
		return err
	}
}
