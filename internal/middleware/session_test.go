package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/middleware"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/jwt"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/logger"
)

func init() {
	// Set Gin to test mode
	gin.SetMode(gin.TestMode)

	// Initialize logger for tests
	_ = logger.Initialize(logger.Config{
		Level:       "info",
		Environment: "test",
	})
}

func sessionRouter(tokens *jwt.TokenManager, extra ...gin.HandlerFunc) (*gin.Engine, *bool) {
	router := gin.New()
	handlerCalled := false

	handlers := []gin.HandlerFunc{middleware.SessionMiddleware(tokens, "", false)}
	handlers = append(handlers, extra...)
	router.Use(handlers...)
	router.GET("/test", func(c *gin.Context) {
		handlerCalled = true
		c.Status(http.StatusOK)
	})
	return router, &handlerCalled
}

func requestWithCookie(token string) *http.Request {
	req := httptest.NewRequest("GET", "/test", http.NoBody)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: middleware.SessionCookieName, Value: token})
	}
	return req
}

func TestSessionMiddleware_ValidCookie(t *testing.T) {
	tokens := jwt.NewTokenManager("test-secret", "test", 1)
	router, handlerCalled := sessionRouter(tokens)

	token, err := tokens.GenerateToken("acct-1", "mentee-1", "kofi@example.com", "Kofi Annan", models.RoleMentee)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, requestWithCookie(token))

	assert.True(t, *handlerCalled)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSessionMiddleware_MissingCookie(t *testing.T) {
	tokens := jwt.NewTokenManager("test-secret", "test", 1)
	router, handlerCalled := sessionRouter(tokens)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, requestWithCookie(""))

	assert.False(t, *handlerCalled)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionMiddleware_InvalidToken(t *testing.T) {
	tokens := jwt.NewTokenManager("test-secret", "test", 1)
	router, handlerCalled := sessionRouter(tokens)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, requestWithCookie("not-a-jwt"))

	assert.False(t, *handlerCalled)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// The bad cookie is cleared
	setCookie := w.Header().Get("Set-Cookie")
	assert.Contains(t, setCookie, middleware.SessionCookieName+"=")
	assert.Contains(t, setCookie, "Max-Age=0")
}

func TestSessionMiddleware_WrongSigningKey(t *testing.T) {
	tokens := jwt.NewTokenManager("test-secret", "test", 1)
	other := jwt.NewTokenManager("other-secret", "test", 1)
	router, handlerCalled := sessionRouter(tokens)

	forged, err := other.GenerateToken("acct-1", "", "kofi@example.com", "Kofi Annan", models.RoleAdmin)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, requestWithCookie(forged))

	assert.False(t, *handlerCalled)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireRole_AllowsMatchingRole(t *testing.T) {
	tokens := jwt.NewTokenManager("test-secret", "test", 1)
	router, handlerCalled := sessionRouter(tokens, middleware.RequireRole(models.RoleMentor))

	token, err := tokens.GenerateToken("acct-2", "7", "amara@example.com", "Amara Okafor", models.RoleMentor)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, requestWithCookie(token))

	assert.True(t, *handlerCalled)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireRole_RejectsOtherRole(t *testing.T) {
	tokens := jwt.NewTokenManager("test-secret", "test", 1)
	router, handlerCalled := sessionRouter(tokens, middleware.RequireRole(models.RoleAdmin))

	token, err := tokens.GenerateToken("acct-1", "mentee-1", "kofi@example.com", "Kofi Annan", models.RoleMentee)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, requestWithCookie(token))

	assert.False(t, *handlerCalled)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireMentorProfile_LinkedProfile(t *testing.T) {
	tokens := jwt.NewTokenManager("test-secret", "test", 1)
	router, handlerCalled := sessionRouter(tokens,
		middleware.RequireRole(models.RoleMentor), middleware.RequireMentorProfile())

	token, err := tokens.GenerateToken("acct-2", "7", "amara@example.com", "Amara Okafor", models.RoleMentor)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, requestWithCookie(token))

	assert.True(t, *handlerCalled)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRequireMentorProfile_UnlinkedProfile(t *testing.T) {
	tokens := jwt.NewTokenManager("test-secret", "test", 1)
	router, handlerCalled := sessionRouter(tokens,
		middleware.RequireRole(models.RoleMentor), middleware.RequireMentorProfile())

	// Mentor signed up but no directory profile linked yet
	token, err := tokens.GenerateToken("acct-2", "", "amara@example.com", "Amara Okafor", models.RoleMentor)
	assert.NoError(t, err)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, requestWithCookie(token))

	assert.False(t, *handlerCalled)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.True(t, strings.Contains(w.Body.String(), "Mentor profile not linked"))
}

func TestMentorID(t *testing.T) {
	id, err := middleware.MentorID(&jwt.SessionClaims{ProfileID: "7"})
	assert.NoError(t, err)
	assert.Equal(t, 7, id)

	_, err = middleware.MentorID(&jwt.SessionClaims{ProfileID: ""})
	assert.Error(t, err)
}
