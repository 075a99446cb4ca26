package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/middleware"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/services"
)

// MatchHandler handles the mentor matching endpoint
type MatchHandler struct {
	service services.MatchingServiceInterface
}

// NewMatchHandler creates a new MatchHandler
func NewMatchHandler(service services.MatchingServiceInterface) *MatchHandler {
	return &MatchHandler{service: service}
}

// GetMatches handles GET /api/v1/matches
// Returns the ranked mentor shortlist for the session mentee. An empty list
// is a valid response.
func (h *MatchHandler) GetMatches(c *gin.Context) {
	claims, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	if claims.Role != models.RoleMentee || claims.ProfileID == "" {
		respondError(c, http.StatusForbidden, "Access denied", nil)
		return
	}

	matches, err := h.service.FindMatches(c.Request.Context(), claims.ProfileID)
	if err != nil {
		respondServiceError(c, err, "Failed to find matches")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"matches": matches,
		"total":   len(matches),
	})
}
