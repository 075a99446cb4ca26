package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/services"
)

// attachError attaches err to the gin context so the observability middleware
// can include the reason in the request log. c.Error() returns *gin.Error (not
// the error interface), so we suppress errcheck here intentionally.
func attachError(c *gin.Context, err error) {
	if err != nil {
		_ = c.Error(err) //nolint:errcheck
	}
}

// respondError sends an error JSON response and attaches the error to the gin
// context so the observability middleware can include the reason in the
// request log.
func respondError(c *gin.Context, status int, message string, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message})
}

// respondErrorWithDetails sends an error response with an additional details field.
func respondErrorWithDetails(c *gin.Context, status int, message string, details any, err error) {
	attachError(c, err)
	c.JSON(status, gin.H{"error": message, "details": details})
}

// respondServiceError maps service sentinel errors to HTTP statuses.
// Anything unrecognized becomes a generic 500 so internal details never
// cross the boundary.
func respondServiceError(c *gin.Context, err error, defaultMsg string) {
	switch {
	case errors.Is(err, services.ErrMentorNotFound):
		respondError(c, http.StatusNotFound, "Mentor not found", err)
	case errors.Is(err, services.ErrMenteeNotFound):
		respondError(c, http.StatusNotFound, "Mentee not found", err)
	case errors.Is(err, services.ErrRequestNotFound):
		respondError(c, http.StatusNotFound, "Request not found", err)
	case errors.Is(err, services.ErrConversationNotFound):
		respondError(c, http.StatusNotFound, "Conversation not found", err)
	case errors.Is(err, services.ErrMeetingNotFound):
		respondError(c, http.StatusNotFound, "Meeting not found", err)
	case errors.Is(err, services.ErrAccessDenied):
		respondError(c, http.StatusForbidden, "Access denied", err)
	case errors.Is(err, services.ErrRequestResolved):
		respondError(c, http.StatusConflict, "Request already resolved", err)
	case errors.Is(err, services.ErrDuplicateRequest):
		respondError(c, http.StatusConflict, "A pending request to this mentor already exists", err)
	case errors.Is(err, services.ErrCooldownActive):
		respondError(c, http.StatusTooManyRequests, "Please wait before submitting another request", err)
	case errors.Is(err, services.ErrConversationNotActive):
		respondError(c, http.StatusConflict, "Conversation is not active", err)
	case errors.Is(err, services.ErrInvalidTransition):
		respondError(c, http.StatusConflict, "Invalid status transition", err)
	case errors.Is(err, services.ErrEmailTaken):
		respondError(c, http.StatusConflict, "Email already registered", err)
	case errors.Is(err, services.ErrInvalidCredentials):
		respondError(c, http.StatusUnauthorized, "Invalid email or password", err)
	case errors.Is(err, services.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, "Invalid input", err)
	default:
		respondError(c, http.StatusInternalServerError, defaultMsg, err)
	}
}
