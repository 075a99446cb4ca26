package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/metrics"
)

const messageColumns = `id, conversation_id, sender_id, sender_name,
	sender_type, content, created_at, read`

// MessageRepository provides access to chat messages
type MessageRepository struct {
	pool *pgxpool.Pool
}

var _ MessageRepositoryInterface = (*MessageRepository)(nil)

// NewMessageRepository creates a new message repository
func NewMessageRepository(pool *pgxpool.Pool) *MessageRepository {
	return &MessageRepository{pool: pool}
}

// Create appends a message to a conversation
func (r *MessageRepository) Create(ctx context.Context, msg *models.ChatMessage) (*models.ChatMessage, error) {
	start := time.Now()

	query := fmt.Sprintf(`
		INSERT INTO chat_messages (id, conversation_id, sender_id, sender_name,
			sender_type, content)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s`, messageColumns)

	created, err := models.ScanMessage(r.pool.QueryRow(ctx, query,
		msg.ID, msg.ConversationID, msg.SenderID, msg.SenderName,
		msg.SenderType, msg.Content,
	))
	if err != nil {
		recordMetrics("messages_create", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	recordMetrics("messages_create", "success", metrics.MeasureDuration(start))
	return created, nil
}

// ListByConversation returns a conversation's messages in creation order
func (r *MessageRepository) ListByConversation(ctx context.Context, conversationID string) ([]*models.ChatMessage, error) {
	start := time.Now()

	query := fmt.Sprintf(`
		SELECT %s FROM chat_messages
		WHERE conversation_id = $1
		ORDER BY created_at ASC`, messageColumns)

	rows, err := r.pool.Query(ctx, query, conversationID)
	if err != nil {
		recordMetrics("messages_list", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}

	messages, err := models.ScanMessages(rows)
	if err != nil {
		recordMetrics("messages_list", "error", metrics.MeasureDuration(start))
		return nil, fmt.Errorf("failed to scan messages: %w", err)
	}

	recordMetrics("messages_list", "success", metrics.MeasureDuration(start))
	return messages, nil
}

// MarkRead marks every message sent by the other side as read. readerType is
// the side currently viewing the conversation.
func (r *MessageRepository) MarkRead(ctx context.Context, conversationID string, readerType models.SenderType) error {
	start := time.Now()

	_, err := r.pool.Exec(ctx, `
		UPDATE chat_messages SET read = true
		WHERE conversation_id = $1 AND sender_type <> $2 AND NOT read`,
		conversationID, readerType,
	)
	if err != nil {
		recordMetrics("messages_mark_read", "error", metrics.MeasureDuration(start))
		return fmt.Errorf("failed to mark messages read: %w", err)
	}

	recordMetrics("messages_mark_read", "success", metrics.MeasureDuration(start))
	return nil
}
