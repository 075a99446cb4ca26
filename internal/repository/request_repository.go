package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	apperrors "github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/errors"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/logger"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/metrics"
)

const requestColumns = `id, mentee_id, mentee_name, mentee_email, mentor_id,
	message, time_commitment, preferred_frequency, status, created_at,
	expires_at, approved_at, declined_at, conversation_id`

// RequestRepository provides access to mentorship requests. Lifecycle
// transitions run inside transactions with the request row locked, so
// concurrent approve, decline and sweep calls serialize per request.
type RequestRepository struct {
	pool *pgxpool.Pool
}

var _ RequestRepositoryInterface = (*RequestRepository)(nil)

// NewRequestRepository creates a new request repository
func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

// Create inserts a new pending request
func (r *RequestRepository) Create(ctx context.Context, req *models.MentorshipRequest) (*models.MentorshipRequest, error) {
	start := time.Now()

	query := fmt.Sprintf(`
		INSERT INTO mentorship_requests (id, mentee_id, mentee_name,
			mentee_email, mentor_id, message, time_commitment,
			preferred_frequency, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING %s`, requestColumns)

	created, err := models.ScanRequest(r.pool.QueryRow(ctx, query,
		req.ID, req.MenteeID, req.MenteeName, req.MenteeEmail, req.MentorID,
		nilIfEmpty(req.Message), nilIfEmpty(req.TimeCommitment),
		nilIfEmpty(req.PreferredFrequency), models.RequestStatusPending,
		req.ExpiresAt,
	))
	if err != nil {
		if isUniqueViolation(err) {
			recordMetrics("requests_create", "conflict", metrics.MeasureDuration(start))
			return nil, apperrors.ConflictError("a pending request to this mentor already exists")
		}
		recordMetrics("requests_create", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	recordMetrics("requests_create", "success", metrics.MeasureDuration(start))
	return created, nil
}

// GetByID returns a request by ID
func (r *RequestRepository) GetByID(ctx context.Context, id string) (*models.MentorshipRequest, error) {
	start := time.Now()

	query := fmt.Sprintf("SELECT %s FROM mentorship_requests WHERE id = $1", requestColumns)
	request, err := models.ScanRequest(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics("requests_get_by_id", "not_found", metrics.MeasureDuration(start))
			return nil, apperrors.NotFoundError("request")
		}
		recordMetrics("requests_get_by_id", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to get request %s: %w", id, err)
	}

	recordMetrics("requests_get_by_id", "success", metrics.MeasureDuration(start))
	return request, nil
}

// GetByMentor returns a mentor's requests filtered by status, newest first
func (r *RequestRepository) GetByMentor(ctx context.Context, mentorID int, statuses []models.RequestStatus) ([]*models.MentorshipRequest, error) {
	start := time.Now()

	query := fmt.Sprintf(`
		SELECT %s FROM mentorship_requests
		WHERE mentor_id = $1 AND status = ANY($2)
		ORDER BY created_at DESC`, requestColumns)

	statusStrings := make([]string, len(statuses))
	for i, s := range statuses {
		statusStrings[i] = string(s)
	}

	rows, err := r.pool.Query(ctx, query, mentorID, statusStrings)
	if err != nil {
		recordMetrics("requests_get_by_mentor", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to query requests for mentor %d: %w", mentorID, err)
	}

	requests, err := models.ScanRequests(rows)
	if err != nil {
		recordMetrics("requests_get_by_mentor", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to scan requests: %w", err)
	}

	recordMetrics("requests_get_by_mentor", "success", metrics.MeasureDuration(start))
	return requests, nil
}

// HasPendingForPair reports whether the mentee already has a pending request
// to this mentor
func (r *RequestRepository) HasPendingForPair(ctx context.Context, menteeEmail string, mentorID int) (bool, error) {
	start := time.Now()

	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM mentorship_requests
			WHERE mentee_email = $1 AND mentor_id = $2 AND status = 'pending'
		)`, menteeEmail, mentorID,
	).Scan(&exists)
	if err != nil {
		recordMetrics("requests_has_pending", "error", metrics.MeasureDuration(start))
		return false, fmt.Errorf("failed to check pending request: %w", err)
	}

	recordMetrics("requests_has_pending", "success", metrics.MeasureDuration(start))
	return exists, nil
}

// HasRecentDecline reports whether any of the mentee's requests was declined
// at or after the given cutoff
func (r *RequestRepository) HasRecentDecline(ctx context.Context, menteeEmail string, since time.Time) (bool, error) {
	start := time.Now()

	var exists bool
	err := r.pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM mentorship_requests
			WHERE mentee_email = $1 AND status = 'declined' AND declined_at >= $2
		)`, menteeEmail, since,
	).Scan(&exists)
	if err != nil {
		recordMetrics("requests_has_recent_decline", "error", metrics.MeasureDuration(start))
		return false, fmt.Errorf("failed to check recent declines: %w", err)
	}

	recordMetrics("requests_has_recent_decline", "success", metrics.MeasureDuration(start))
	return exists, nil
}

// Approve transitions a pending request to approved and opens the
// conversation in the same transaction. A request past its expiry is marked
// expired instead and the call fails with a conflict.
func (r *RequestRepository) Approve(ctx context.Context, requestID string, mentorID int, conversationTTL time.Duration) (*models.MentorshipRequest, *models.Conversation, error) {
	start := time.Now()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		recordMetrics("requests_approve", "error", metrics.MeasureDuration(start))
		return nil, nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	request, err := r.lockRequest(ctx, tx, requestID, mentorID, start, "requests_approve")
	if err != nil {
		return nil, nil, err
	}

	now := time.Now().UTC()
	if !now.Before(request.ExpiresAt) {
		if err := r.markExpiredInTx(ctx, tx, requestID); err != nil {
			recordMetrics("requests_approve", "error", metrics.MeasureDuration(start))
			return nil, nil, err
		}
		if err := tx.Commit(ctx); err != nil {
			recordMetrics("requests_approve", "error", metrics.MeasureDuration(start))
			return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		recordMetrics("requests_approve", "conflict", metrics.MeasureDuration(start))
		return nil, nil, apperrors.ConflictError("request has expired")
	}

	var mentorName string
	if err := tx.QueryRow(ctx, "SELECT name FROM mentors WHERE id = $1", request.MentorID).Scan(&mentorName); err != nil {
		recordMetrics("requests_approve", "error", metrics.MeasureDuration(start))
		return nil, nil, fmt.Errorf("failed to load mentor name: %w", err)
	}

	conversationExpiry := now.Add(conversationTTL)
	conversation, err := models.ScanConversation(tx.QueryRow(ctx, `
		INSERT INTO conversations (id, mentor_id, mentor_name, mentee_id,
			mentee_name, status, expires_at)
		VALUES ($1, $2, $3, $4, $5, 'active', $6)
		RETURNING id, mentor_id, mentor_name, mentee_id, mentee_name, status,
			created_at, expires_at`,
		uuid.NewString(), request.MentorID, mentorName, request.MenteeID,
		request.MenteeName, conversationExpiry,
	))
	if err != nil {
		recordMetrics("requests_approve", "error", metrics.MeasureDuration(start))
		return nil, nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE mentorship_requests
		SET status = 'approved', approved_at = $2, conversation_id = $3
		WHERE id = $1
		RETURNING %s`, requestColumns)

	updated, err := models.ScanRequest(tx.QueryRow(ctx, query, requestID, now, conversation.ID))
	if err != nil {
		recordMetrics("requests_approve", "error", metrics.MeasureDuration(start))
		return nil, nil, fmt.Errorf("failed to approve request %s: %w", requestID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		recordMetrics("requests_approve", "error", metrics.MeasureDuration(start))
		return nil, nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	recordMetrics("requests_approve", "success", metrics.MeasureDuration(start))
	logger.Info("Request approved",
		zap.String("request_id", requestID),
		zap.Int("mentor_id", mentorID),
		zap.String("conversation_id", conversation.ID))

	return updated, conversation, nil
}

// Decline transitions a pending request to declined
func (r *RequestRepository) Decline(ctx context.Context, requestID string, mentorID int) (*models.MentorshipRequest, error) {
	start := time.Now()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		recordMetrics("requests_decline", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	request, err := r.lockRequest(ctx, tx, requestID, mentorID, start, "requests_decline")
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	if !now.Before(request.ExpiresAt) {
		if err := r.markExpiredInTx(ctx, tx, requestID); err != nil {
			recordMetrics("requests_decline", "error", metrics.MeasureDuration(start))
			return nil, err
		}
		if err := tx.Commit(ctx); err != nil {
			recordMetrics("requests_decline", "error", metrics.MeasureDuration(start))
			return nil, fmt.Errorf("failed to commit transaction: %w", err)
		}
		recordMetrics("requests_decline", "conflict", metrics.MeasureDuration(start))
		return nil, apperrors.ConflictError("request has expired")
	}

	query := fmt.Sprintf(`
		UPDATE mentorship_requests
		SET status = 'declined', declined_at = $2
		WHERE id = $1
		RETURNING %s`, requestColumns)

	updated, err := models.ScanRequest(tx.QueryRow(ctx, query, requestID, now))
	if err != nil {
		recordMetrics("requests_decline", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to decline request %s: %w", requestID, err)
	}

	if err := tx.Commit(ctx); err != nil {
		recordMetrics("requests_decline", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	recordMetrics("requests_decline", "success", metrics.MeasureDuration(start))
	logger.Info("Request declined",
		zap.String("request_id", requestID),
		zap.Int("mentor_id", mentorID))

	return updated, nil
}

// SweepExpired marks every pending request whose expiry has passed as
// expired. The predicate only matches pending rows, so concurrent sweeps and
// in-flight approvals cannot double-transition a request.
func (r *RequestRepository) SweepExpired(ctx context.Context, now time.Time) ([]*models.MentorshipRequest, error) {
	start := time.Now()

	query := fmt.Sprintf(`
		UPDATE mentorship_requests
		SET status = 'expired'
		WHERE status = 'pending' AND expires_at <= $1
		RETURNING %s`, requestColumns)

	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		recordMetrics("requests_sweep_expired", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to sweep expired requests: %w", err)
	}

	swept, err := models.ScanRequests(rows)
	if err != nil {
		recordMetrics("requests_sweep_expired", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to scan swept requests: %w", err)
	}

	recordMetrics("requests_sweep_expired", "success", metrics.MeasureDuration(start))
	return swept, nil
}

// lockRequest loads a request row FOR UPDATE and verifies ownership and that
// the request is still pending
func (r *RequestRepository) lockRequest(ctx context.Context, tx pgx.Tx, requestID string, mentorID int, start time.Time, operation string) (*models.MentorshipRequest, error) {
	query := fmt.Sprintf("SELECT %s FROM mentorship_requests WHERE id = $1 FOR UPDATE", requestColumns)

	request, err := models.ScanRequest(tx.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics(operation, "not_found", metrics.MeasureDuration(start))
			return nil, apperrors.NotFoundError("request")
		}
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to lock request %s: %w", requestID, err)
	}

	if request.MentorID != mentorID {
		recordMetrics(operation, "denied", metrics.MeasureDuration(start))
		return nil, apperrors.AccessDeniedError("request belongs to another mentor")
	}

	if request.Status != models.RequestStatusPending {
		recordMetrics(operation, "conflict", metrics.MeasureDuration(start))
		return nil, apperrors.ConflictError(fmt.Sprintf("request is already %s", request.Status))
	}

	return request, nil
}

// markExpiredInTx flips a locked pending request to expired
func (r *RequestRepository) markExpiredInTx(ctx context.Context, tx pgx.Tx, requestID string) error {
	_, err := tx.Exec(ctx,
		"UPDATE mentorship_requests SET status = 'expired' WHERE id = $1 AND status = 'pending'",
		requestID,
	)
	if err != nil {
		return fmt.Errorf("failed to expire request %s: %w", requestID, err)
	}
	return nil
}
