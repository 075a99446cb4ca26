package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/middleware"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/services"
)

// AuthHandler handles signup, login and session endpoints
type AuthHandler struct {
	service       services.AuthServiceInterface
	sessionTTLSec int
	cookieDomain  string
	cookieSecure  bool
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(service services.AuthServiceInterface, sessionTTLHours int, cookieDomain string, cookieSecure bool) *AuthHandler {
	return &AuthHandler{
		service:       service,
		sessionTTLSec: sessionTTLHours * 3600,
		cookieDomain:  cookieDomain,
		cookieSecure:  cookieSecure,
	}
}

// Signup handles POST /api/v1/auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req models.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(err), err)
		return
	}

	session, token, err := h.service.Signup(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to create account")
		return
	}

	middleware.SetSessionCookie(c, token, h.sessionTTLSec, h.cookieDomain, h.cookieSecure)
	c.JSON(http.StatusCreated, session)
}

// Login handles POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondErrorWithDetails(c, http.StatusBadRequest, "Invalid request body",
			ParseValidationErrors(err), err)
		return
	}

	session, token, err := h.service.Login(c.Request.Context(), &req)
	if err != nil {
		respondServiceError(c, err, "Failed to log in")
		return
	}

	middleware.SetSessionCookie(c, token, h.sessionTTLSec, h.cookieDomain, h.cookieSecure)
	c.JSON(http.StatusOK, session)
}

// Logout handles POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	middleware.ClearSessionCookie(c, h.cookieDomain, h.cookieSecure)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Session handles GET /api/v1/auth/session
// Returns the current session; runs behind SessionMiddleware.
func (h *AuthHandler) Session(c *gin.Context) {
	claims, err := middleware.GetSession(c)
	if err != nil {
		respondError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	c.JSON(http.StatusOK, models.SessionResponse{
		AccountID: claims.AccountID,
		ProfileID: claims.ProfileID,
		Email:     claims.Email,
		Name:      claims.Name,
		Role:      claims.Role,
	})
}
