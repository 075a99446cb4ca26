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

const conversationColumns = `id, mentor_id, mentor_name, mentee_id,
	mentee_name, status, created_at, expires_at`

// ConversationRepository provides access to conversations. Rows are created
// by RequestRepository.Approve; this repository only reads and transitions
// them.
type ConversationRepository struct {
	pool *pgxpool.Pool
}

var _ ConversationRepositoryInterface = (*ConversationRepository)(nil)

// NewConversationRepository creates a new conversation repository
func NewConversationRepository(pool *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{pool: pool}
}

// GetByID returns a conversation by ID
func (r *ConversationRepository) GetByID(ctx context.Context, id string) (*models.Conversation, error) {
	start := time.Now()

	query := fmt.Sprintf("SELECT %s FROM conversations WHERE id = $1", conversationColumns)
	conversation, err := models.ScanConversation(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			recordMetrics("conversations_get_by_id", "not_found", metrics.MeasureDuration(start))
			return nil, apperrors.NotFoundError("conversation")
		}
		recordMetrics("conversations_get_by_id", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to get conversation %s: %w", id, err)
	}

	recordMetrics("conversations_get_by_id", "success", metrics.MeasureDuration(start))
	return conversation, nil
}

// ListByMentor returns a mentor's conversations, newest first
func (r *ConversationRepository) ListByMentor(ctx context.Context, mentorID int) ([]*models.Conversation, error) {
	return r.list(ctx, "conversations_list_by_mentor", "mentor_id", mentorID)
}

// ListByMentee returns a mentee's conversations, newest first
func (r *ConversationRepository) ListByMentee(ctx context.Context, menteeID string) ([]*models.Conversation, error) {
	return r.list(ctx, "conversations_list_by_mentee", "mentee_id", menteeID)
}

func (r *ConversationRepository) list(ctx context.Context, operation, column string, participant any) ([]*models.Conversation, error) {
	start := time.Now()

	query := fmt.Sprintf(
		"SELECT %s FROM conversations WHERE %s = $1 ORDER BY created_at DESC",
		conversationColumns, column,
	)

	rows, err := r.pool.Query(ctx, query, participant)
	if err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}
	defer rows.Close()

	conversations := []*models.Conversation{}
	for rows.Next() {
		conversation, err := models.ScanConversation(rows)
		if err != nil {
			recordMetrics(operation, "error", metrics.MeasureDuration(start))
			return nil, fmt.Errorf("failed to scan conversation: %w", err)
		}
		conversations = append(conversations, conversation)
	}
	if err := rows.Err(); err != nil {
		recordMetrics(operation, "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to read conversations: %w", err)
	}

	recordMetrics(operation, "success", metrics.MeasureDuration(start))
	return conversations, nil
}

// UpdateStatus transitions a conversation to a new status
func (r *ConversationRepository) UpdateStatus(ctx context.Context, id string, status models.ConversationStatus) error {
	start := time.Now()

	tag, err := r.pool.Exec(ctx,
		"UPDATE conversations SET status = $2 WHERE id = $1",
		id, status,
	)
	if err != nil {
		recordMetrics("conversations_update_status", "error", metrics.MeasureDuration(start))
		return fmt.Errorf("failed to update conversation %s status: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		recordMetrics("conversations_update_status", "not_found", metrics.MeasureDuration(start))
		return apperrors.NotFoundError("conversation")
	}

	recordMetrics("conversations_update_status", "success", metrics.MeasureDuration(start))
	return nil
}
