package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/services"
)

// MentorHandler handles the public mentor directory endpoints
type MentorHandler struct {
	service services.MentorServiceInterface
}

// NewMentorHandler creates a new MentorHandler
func NewMentorHandler(service services.MentorServiceInterface) *MentorHandler {
	return &MentorHandler{service: service}
}

// GetMentors handles GET /api/v1/mentors
// Returns all visible mentors in directory format
func (h *MentorHandler) GetMentors(c *gin.Context) {
	forceRefresh := c.Query("refresh") == "true"

	mentors, err := h.service.ListMentors(c.Request.Context(), forceRefresh)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch mentors")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mentors": mentors,
		"total":   len(mentors),
	})
}

// GetMentor handles GET /api/v1/mentors/:id
// The parameter is a numeric id or, failing that, a profile slug.
func (h *MentorHandler) GetMentor(c *gin.Context) {
	param := c.Param("id")
	if param == "" {
		respondError(c, http.StatusBadRequest, "Invalid mentor ID", nil)
		return
	}

	if id, err := strconv.Atoi(param); err == nil {
		mentor, err := h.service.GetMentor(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, err, "Failed to fetch mentor")
			return
		}
		c.JSON(http.StatusOK, mentor)
		return
	}

	mentor, err := h.service.GetMentorBySlug(c.Request.Context(), param)
	if err != nil {
		respondServiceError(c, err, "Failed to fetch mentor")
		return
	}
	c.JSON(http.StatusOK, mentor)
}
