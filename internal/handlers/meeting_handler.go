package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/middleware"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/services"
)

// MeetingHandler handles mentor meeting endpoints
type MeetingHandler struct {
	service services.MeetingServiceInterface
}

// NewMeetingHandler creates a new MeetingHandler
func NewMeetingHandler(service services.MeetingServiceInterface) *MeetingHandler {
	return &MeetingHandler{service: service}
}

// Schedule handles POST /api/v1/mentor/conversations/:id/meetings
func (h *MeetingHandler) Schedule(c *gin.Context) {
	mentorID, ok := h.mentorID(c)
	if !ok {
		return
	}

	conversationID := c.Param("id")
	if conversationID == "" {
		respondError(c, http.StatusBadRequest, "Invalid conversation ID", nil)
		return
	}

	var payload models.ScheduleMeetingPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(err), err)
		return
	}

	meeting, err := h.service.Schedule(c.Request.Context(), mentorID, conversationID, &payload)
	if err != nil {
		respondServiceError(c, err, "Failed to schedule meeting")
		return
	}

	c.JSON(http.StatusCreated, meeting)
}

// ListByConversation handles GET /api/v1/mentor/conversations/:id/meetings
func (h *MeetingHandler) ListByConversation(c *gin.Context) {
	mentorID, ok := h.mentorID(c)
	if !ok {
		return
	}

	conversationID := c.Param("id")
	if conversationID == "" {
		respondError(c, http.StatusBadRequest, "Invalid conversation ID", nil)
		return
	}

	meetings, err := h.service.ListByConversation(c.Request.Context(), conversationID, mentorID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch meetings")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"meetings": meetings,
		"total":    len(meetings),
	})
}

// UpdateStatus handles POST /api/v1/mentor/meetings/:id/status
func (h *MeetingHandler) UpdateStatus(c *gin.Context) {
	mentorID, ok := h.mentorID(c)
	if !ok {
		return
	}

	meetingID := c.Param("id")
	if meetingID == "" {
		respondError(c, http.StatusBadRequest, "Invalid meeting ID", nil)
		return
	}

	var payload models.UpdateMeetingStatusPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(err), err)
		return
	}

	meeting, err := h.service.UpdateStatus(c.Request.Context(), mentorID, meetingID, payload.Status)
	if err != nil {
		respondServiceError(c, err, "Failed to update meeting status")
		return
	}

	c.JSON(http.StatusOK, meeting)
}

func (h *MeetingHandler) mentorID(c *gin.Context) (int, bool) {
	claims, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return 0, false
	}

	id, err := middleware.MentorID(claims)
	if err != nil {
		respondError(c, http.StatusForbidden, "Mentor profile not linked", err)
		return 0, false
	}
	return id, true
}
