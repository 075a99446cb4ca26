package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/services"
)

// AdminHandler handles admin-only endpoints: directory management, account
// linking and the on-demand expiry sweep
type AdminHandler struct {
	mentors  services.MentorServiceInterface
	requests services.RequestServiceInterface
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(mentors services.MentorServiceInterface, requests services.RequestServiceInterface) *AdminHandler {
	return &AdminHandler{mentors: mentors, requests: requests}
}

// CreateMentor handles POST /api/v1/admin/mentors
func (h *AdminHandler) CreateMentor(c *gin.Context) {
	var req models.SaveMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(err), err)
		return
	}

	mentor, err := h.mentors.CreateMentor(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create mentor")
		return
	}

	c.JSON(http.StatusCreated, mentor)
}

// UpdateMentor handles PUT /api/v1/admin/mentors/:id
func (h *AdminHandler) UpdateMentor(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var req models.SaveMentorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(err), err)
		return
	}

	mentor, err := h.mentors.UpdateMentor(c.Request.Context(), id, &req)
	if err != nil {
		respondServiceError(c, err, "Failed to update mentor")
		return
	}

	c.JSON(http.StatusOK, mentor)
}

// RemoveMentor handles DELETE /api/v1/admin/mentors/:id
// Soft removal: the mentor is hidden from the directory, never deleted, so
// existing conversations keep their mentor reference.
func (h *AdminHandler) RemoveMentor(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.mentors.SetMentorVisibility(c.Request.Context(), id, false); err != nil {
		respondServiceError(c, err, "Failed to remove mentor")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mentor removed from directory"})
}

// RestoreMentor handles POST /api/v1/admin/mentors/:id/restore
func (h *AdminHandler) RestoreMentor(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	if err := h.mentors.SetMentorVisibility(c.Request.Context(), id, true); err != nil {
		respondServiceError(c, err, "Failed to restore mentor")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Mentor restored to directory"})
}

// LinkAccount handles POST /api/v1/admin/mentors/:id/link-account
// Attaches a signed-up mentor account to a directory profile
func (h *AdminHandler) LinkAccount(c *gin.Context) {
	id, ok := h.pathID(c)
	if !ok {
		return
	}

	var payload struct {
		Email string `json:"email" binding:"required,email"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(err), err)
		return
	}

	account, err := h.mentors.LinkMentorAccount(c.Request.Context(), payload.Email, id)
	if err != nil {
		respondServiceError(c, err, "Failed to link mentor account")
		return
	}

	c.JSON(http.StatusOK, account)
}

// SweepExpired handles POST /api/v1/admin/requests/sweep-expired
// Runs the expiry sweep on demand; the background sweeper runs the same
// idempotent operation on a timer.
func (h *AdminHandler) SweepExpired(c *gin.Context) {
	count, err := h.requests.SweepExpired(c.Request.Context())
	if err != nil {
		respondServiceError(c, err, "Failed to sweep expired requests")
		return
	}

	c.JSON(http.StatusOK, gin.H{"expired": count})
}

func (h *AdminHandler) pathID(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid mentor ID", err)
		return 0, false
	}
	return id, true
}
