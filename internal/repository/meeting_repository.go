package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	apperrors "github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/errors"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/metrics"
)

const meetingColumns = `id, conversation_id, mentor_id, mentee_id, title,
	type, duration_minutes, scheduled_at, status, created_at`

// MeetingRepository provides access to scheduled meetings
type MeetingRepository struct {
	pool *pgxpool.Pool
}

var _ MeetingRepositoryInterface = (*MeetingRepository)(nil)

// NewMeetingRepository creates a new meeting repository
func NewMeetingRepository(pool *pgxpool.Pool) *MeetingRepository {
	return &MeetingRepository{pool: pool}
}

// Create inserts a new scheduled meeting
func (r *MeetingRepository) Create(ctx context.Context, meeting *models.Meeting) (*models.Meeting, error) {
	start := time.Now()

	query := fmt.Sprintf(`
		INSERT INTO meetings (id, conversation_id, mentor_id, mentee_id, title,
			type, duration_minutes, scheduled_at, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s`, meetingColumns)

	created, err := models.ScanMeeting(r.pool.QueryRow(ctx, query,
		meeting.ID, meeting.ConversationID, meeting.MentorID, meeting.MenteeID,
		meeting.Title, meeting.Type, meeting.DurationMinutes,
		meeting.ScheduledAt, models.MeetingStatusScheduled,
	))
	if err != nil {
		recordMetrics("meetings_create", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to create meeting: %w", err)
	}

	recordMetrics("meetings_create", "success", metrics.MeasureDuration(start))
	return created, nil
}

// GetByID returns a meeting by ID
func (r *MeetingRepository) GetByID(ctx context.Context, id string) (*models.Meeting, error) {
	start := time.Now()

	query := fmt.Sprintf("SELECT %s FROM meetings WHERE id = $1", meetingColumns)
	meeting, err := models.ScanMeeting(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics("meetings_get_by_id", "not_found", metrics.MeasureDuration(start))
			return nil, apperrors.NotFoundError("meeting")
		}
		recordMetrics("meetings_get_by_id", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to get meeting %s: %w", id, err)
	}

	recordMetrics("meetings_get_by_id", "success", metrics.MeasureDuration(start))
	return meeting, nil
}

// ListByConversation returns a conversation's meetings, soonest first
func (r *MeetingRepository) ListByConversation(ctx context.Context, conversationID string) ([]*models.Meeting, error) {
	start := time.Now()

	query := fmt.Sprintf(`
		SELECT %s FROM meetings
		WHERE conversation_id = $1
		ORDER BY scheduled_at ASC`, meetingColumns)

	rows, err := r.pool.Query(ctx, query, conversationID)
	if err != nil {
		recordMetrics("meetings_list", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to query meetings: %w", err)
	}

	meetings, err := models.ScanMeetings(rows)
	if err != nil {
		recordMetrics("meetings_list", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to scan meetings: %w", err)
	}

	recordMetrics("meetings_list", "success", metrics.MeasureDuration(start))
	return meetings, nil
}

// UpdateStatus transitions a meeting to a new status after validating the
// transition against the current row
func (r *MeetingRepository) UpdateStatus(ctx context.Context, id string, status models.MeetingStatus) (*models.Meeting, error) {
	start := time.Now()

	tx, err := r.pool.Begin(ctx)
	if err != nil {
		recordMetrics("meetings_update_status", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	lockQuery := fmt.Sprintf("SELECT %s FROM meetings WHERE id = $1 FOR UPDATE", meetingColumns)
	meeting, err := models.ScanMeeting(tx.QueryRow(ctx, lockQuery, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics("meetings_update_status", "not_found", metrics.MeasureDuration(start))
			return nil, apperrors.NotFoundError("meeting")
		}
		recordMetrics("meetings_update_status", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to lock meeting %s: %w", id, err)
	}

	if !meeting.Status.CanTransitionTo(status) {
		recordMetrics("meetings_update_status", "conflict", metrics.MeasureDuration(start))
		return nil, apperrors.ConflictError(
			fmt.Sprintf("cannot move meeting from %s to %s", meeting.Status, status))
	}

	updateQuery := fmt.Sprintf(
		"UPDATE meetings SET status = $2 WHERE id = $1 RETURNING %s", meetingColumns)
	updated, err := models.ScanMeeting(tx.QueryRow(ctx, updateQuery, id, status))
	if err != nil {
		recordMetrics("meetings_update_status", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to update meeting %s status: %w", id, err)
	}

	if err := tx.Commit(ctx); err != nil {
		recordMetrics("meetings_update_status", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	recordMetrics("meetings_update_status", "success", metrics.MeasureDuration(start))
	return updated, nil
}
