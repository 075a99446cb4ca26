package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/repository"
	apperrors "github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/errors"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/logger"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/metrics"
)

// ConversationService handles messaging inside mentorship conversations.
// The active-status check lives here so every write path shares it.
type ConversationService struct {
	conversations repository.ConversationRepositoryInterface
	messages      repository.MessageRepositoryInterface
}

var _ ConversationServiceInterface = (*ConversationService)(nil)

// NewConversationService creates a new conversation service
func NewConversationService(
	conversations repository.ConversationRepositoryInterface,
	messages repository.MessageRepositoryInterface,
) *ConversationService {
	return &ConversationService{conversations: conversations, messages: messages}
}

// SendMessage appends a message to an active conversation. The sender must
// be one of the two participants and messages carry a server-assigned id and
// timestamp.
func (s *ConversationService) SendMessage(ctx context.Context, conversationID string, sender Participant, content string) (*models.ChatMessage, error) {
	conversation, err := s.getConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if err := s.verifyParticipant(conversation, sender); err != nil {
		return nil, err
	}

	if conversation.Status != models.ConversationStatusActive {
		return nil, fmt.Errorf("%w: conversation is %s", ErrConversationNotActive, conversation.Status)
	}

	message, err := s.messages.Create(ctx, &models.ChatMessage{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		SenderID:       sender.ID,
		SenderName:     sender.Name,
		SenderType:     sender.Type,
		Content:        content,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to send message: %w", err)
	}

	metrics.MessagesSent.WithLabelValues(string(sender.Type)).Inc()
	return message, nil
}

// GetChat returns a conversation with its messages and participants, marking
// the other side's messages as read for the viewer
func (s *ConversationService) GetChat(ctx context.Context, conversationID string, viewer Participant) (*models.ChatResponse, error) {
	conversation, err := s.getConversation(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	if err := s.verifyParticipant(conversation, viewer); err != nil {
		return nil, err
	}

	if err := s.messages.MarkRead(ctx, conversationID, viewer.Type); err != nil {
		logger.LogError(err, "Failed to mark messages read",
			zap.String("conversation_id", conversationID))
	}

	messages, err := s.messages.ListByConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to load messages: %w", err)
	}

	response := &models.ChatResponse{
		Conversation: conversation,
		Messages:     make([]models.ChatMessage, 0, len(messages)),
		Participants: models.ChatParticipants{
			MentorID:   conversation.MentorID,
			MentorName: conversation.MentorName,
			MenteeID:   conversation.MenteeID,
			MenteeName: conversation.MenteeName,
		},
	}
	for _, m := range messages {
		response.Messages = append(response.Messages, *m)
	}
	return response, nil
}

// Close transitions an active conversation to closed. Only the owning mentor
// or an admin may close a conversation.
func (s *ConversationService) Close(ctx context.Context, conversationID string, mentorID int, isAdmin bool) error {
	conversation, err := s.getConversation(ctx, conversationID)
	if err != nil {
		return err
	}

	if !isAdmin && conversation.MentorID != mentorID {
		return ErrAccessDenied
	}

	if conversation.Status != models.ConversationStatusActive {
		return fmt.Errorf("%w: conversation is %s", ErrConversationNotActive, conversation.Status)
	}

	if err := s.conversations.UpdateStatus(ctx, conversationID, models.ConversationStatusClosed); err != nil {
		return fmt.Errorf("failed to close conversation: %w", err)
	}

	logger.Info("Conversation closed",
		zap.String("conversation_id", conversationID),
		zap.Bool("by_admin", isAdmin))
	return nil
}

func (s *ConversationService) getConversation(ctx context.Context, conversationID string) (*models.Conversation, error) {
	conversation, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		if apperrors.Is(err, apperrors.ErrNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, fmt.Errorf("failed to load conversation: %w", err)
	}
	return conversation, nil
}

// verifyParticipant checks the caller belongs to the conversation on the
// side their session claims
func (s *ConversationService) verifyParticipant(conversation *models.Conversation, p Participant) error {
	switch p.Type {
	case models.SenderTypeMentor:
		if fmt.Sprintf("%d", conversation.MentorID) != p.ID {
			return ErrAccessDenied
		}
	case models.SenderTypeMentee:
		if conversation.MenteeID != p.ID {
			return ErrAccessDenied
		}
	default:
		return ErrAccessDenied
	}
	return nil
}
