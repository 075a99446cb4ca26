package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/middleware"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/services"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/jwt"
)

// ChatHandler handles conversation and messaging endpoints
type ChatHandler struct {
	service services.ConversationServiceInterface
}

// NewChatHandler creates a new ChatHandler
func NewChatHandler(service services.ConversationServiceInterface) *ChatHandler {
	return &ChatHandler{service: service}
}

// SendMessage handles POST /api/v1/conversations/:id/messages
func (h *ChatHandler) SendMessage(c *gin.Context) {
	sender, ok := h.participant(c)
	if !ok {
		return
	}

	conversationID := c.Param("id")
	if conversationID == "" {
		respondError(c, http.StatusBadRequest, "Invalid conversation ID", nil)
		return
	}

	var payload models.SendMessagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(err), err)
		return
	}

	message, err := h.service.SendMessage(c.Request.Context(), conversationID, sender, payload.Content)
	if err != nil {
		respondServiceError(c, err, "Failed to send message")
		return
	}

	c.JSON(http.StatusCreated, message)
}

// GetChat handles GET /api/v1/chat/:id
// Returns the conversation, its messages and both participants
func (h *ChatHandler) GetChat(c *gin.Context) {
	viewer, ok := h.participant(c)
	if !ok {
		return
	}

	conversationID := c.Param("id")
	if conversationID == "" {
		respondError(c, http.StatusBadRequest, "Invalid conversation ID", nil)
		return
	}

	chat, err := h.service.GetChat(c.Request.Context(), conversationID, viewer)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch conversation")
		return
	}

	c.JSON(http.StatusOK, chat)
}

// CloseConversation handles POST /api/v1/mentor/conversations/:id/close
func (h *ChatHandler) CloseConversation(c *gin.Context) {
	claims, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	conversationID := c.Param("id")
	if conversationID == "" {
		respondError(c, http.StatusBadRequest, "Invalid conversation ID", nil)
		return
	}

	isAdmin := claims.Role == models.RoleAdmin
	mentorID := 0
	if !isAdmin {
		mentorID, err = middleware.MentorID(claims)
		if err != nil {
			respondError(c, http.StatusForbidden, "Mentor profile not linked", err)
			return
		}
	}

	if err := h.service.Close(c.Request.Context(), conversationID, mentorID, isAdmin); err != nil {
		respondServiceError(c, err, "Failed to close conversation")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Conversation closed"})
}

// participant resolves the session holder's conversation identity
func (h *ChatHandler) participant(c *gin.Context) (services.Participant, bool) {
	claims, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return services.Participant{}, false
	}

	participant, err := participantFromClaims(claims)
	if err != nil {
		respondError(c, http.StatusForbidden, "Access denied", err)
		return services.Participant{}, false
	}
	return participant, true
}

func participantFromClaims(claims *jwt.SessionClaims) (services.Participant, error) {
	switch claims.Role {
	case models.RoleMentee:
		if claims.ProfileID == "" {
			return services.Participant{}, middleware.ErrInvalidSession
		}
		return services.Participant{
			ID:   claims.ProfileID,
			Name: claims.Name,
			Type: models.SenderTypeMentee,
		}, nil
	case models.RoleMentor:
		if claims.ProfileID == "" {
			return services.Participant{}, middleware.ErrInvalidSession
		}
		return services.Participant{
			ID:   claims.ProfileID,
			Name: claims.Name,
			Type: models.SenderTypeMentor,
		}, nil
	default:
		return services.Participant{}, middleware.ErrInvalidSession
	}
}
