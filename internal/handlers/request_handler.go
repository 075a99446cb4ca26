package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/middleware"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/services"
)

// RequestHandler handles mentorship request endpoints: the public submission
// flow and the mentor-side lifecycle actions
type RequestHandler struct {
	service services.RequestServiceInterface
}

// NewRequestHandler creates a new RequestHandler
func NewRequestHandler(service services.RequestServiceInterface) *RequestHandler {
	return &RequestHandler{service: service}
}

// Submit handles POST /api/v1/mentee-signup
// Combined mentee signup and request submission
func (h *RequestHandler) Submit(c *gin.Context) {
	var payload models.SubmitRequestPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(err), err)
		return
	}

	request, err := h.service.Submit(c.Request.Context(), &payload)
	if err != nil {
		respondServiceError(c, err, "Failed to submit request")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requestId": request.ID,
		"status":    request.Status,
		"expiresAt": request.ExpiresAt,
	})
}

// GetRequests handles GET /api/v1/mentor/requests
// Returns the mentor's requests filtered by group (active/past)
func (h *RequestHandler) GetRequests(c *gin.Context) {
	mentorID, ok := h.mentorID(c)
	if !ok {
		return
	}

	group := c.Query("group")
	if group != string(models.RequestGroupActive) && group != string(models.RequestGroupPast) {
		respondError(c, http.StatusBadRequest, "Invalid group value. Must be 'active' or 'past'", nil)
		return
	}

	response, err := h.service.GetRequests(c.Request.Context(), mentorID, models.RequestGroup(group))
	if err != nil {
		respondServiceError(c, err, "Failed to fetch requests")
		return
	}

	c.JSON(http.StatusOK, response)
}

// GetRequestByID handles GET /api/v1/mentor/requests/:id
func (h *RequestHandler) GetRequestByID(c *gin.Context) {
	mentorID, ok := h.mentorID(c)
	if !ok {
		return
	}

	requestID := c.Param("id")
	if requestID == "" {
		respondError(c, http.StatusBadRequest, "Invalid request ID", nil)
		return
	}

	request, err := h.service.GetRequest(c.Request.Context(), mentorID, requestID)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch request")
		return
	}

	c.JSON(http.StatusOK, request)
}

// Approve handles POST /api/v1/mentor/requests/:id/approve
// Approves a pending request and opens the conversation
func (h *RequestHandler) Approve(c *gin.Context) {
	mentorID, ok := h.mentorID(c)
	if !ok {
		return
	}

	requestID := c.Param("id")
	if requestID == "" {
		respondError(c, http.StatusBadRequest, "Invalid request ID", nil)
		return
	}

	request, conversation, err := h.service.Approve(c.Request.Context(), mentorID, requestID)
	if err != nil {
		respondServiceError(c, err, "Failed to approve request")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"request":        request,
		"conversationId": conversation.ID,
	})
}

// Decline handles POST /api/v1/mentor/requests/:id/decline
func (h *RequestHandler) Decline(c *gin.Context) {
	mentorID, ok := h.mentorID(c)
	if !ok {
		return
	}

	requestID := c.Param("id")
	if requestID == "" {
		respondError(c, http.StatusBadRequest, "Invalid request ID", nil)
		return
	}

	request, err := h.service.Decline(c.Request.Context(), mentorID, requestID)
	if err != nil {
		respondServiceError(c, err, "Failed to decline request")
		return
	}

	c.JSON(http.StatusOK, request)
}

// mentorID resolves the numeric mentor id from the session, responding with
// an error when the session is missing or unlinked
func (h *RequestHandler) mentorID(c *gin.Context) (int, bool) {
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
