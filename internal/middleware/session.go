package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/internal/models"
	"github.com/Christophe-Shumbusho/diaspora-bridge-mvp-sub000/pkg/jwt"
)

const (
	// SessionCookieName is the name of the session cookie
	SessionCookieName = "db_session"

	// SessionContextKey is the key used to store session claims in context
	SessionContextKey = "session"
)

var (
	ErrSessionNotFound = errors.New("session not found in context")
	ErrInvalidSession  = errors.New("invalid session type")
)

// SessionMiddleware validates the JWT session cookie and stores the claims
// in the request context. Role restriction is handled by RequireRole.
func SessionMiddleware(tokenManager *jwt.TokenManager, cookieDomain string, cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		cookie, err := c.Cookie(SessionCookieName)
		if err != nil {
			_ = c.Error(fmt.Errorf("missing session cookie")) //nolint:errcheck
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		claims, err := tokenManager.ValidateToken(cookie)
		if err != nil {
			_ = c.Error(fmt.Errorf("invalid session token: %w", err)) //nolint:errcheck

			clearSessionCookie(c, cookieDomain, cookieSecure)

			if errors.Is(err, jwt.ErrExpiredToken) {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Session expired"})
			} else {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			}
			c.Abort()
			return
		}

		c.Set(SessionContextKey, claims)
		c.Next()
	}
}

// RequireRole aborts with 403 unless the session role matches one of the
// allowed roles. Must run after SessionMiddleware.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := GetSession(c)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}

		for _, role := range roles {
			if claims.Role == role {
				c.Next()
				return
			}
		}

		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		c.Abort()
	}
}

// RequireMentorProfile aborts with 403 when a mentor session has no linked
// directory profile yet. Must run after RequireRole(models.RoleMentor).
func RequireMentorProfile() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := GetSession(c)
		if err != nil || claims.Role != models.RoleMentor {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}

		if _, err := strconv.Atoi(claims.ProfileID); err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Mentor profile not linked"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// GetSession extracts session claims from context
func GetSession(c *gin.Context) (*jwt.SessionClaims, error) {
	val, exists := c.Get(SessionContextKey)
	if !exists {
		return nil, ErrSessionNotFound
	}

	claims, ok := val.(*jwt.SessionClaims)
	if !ok {
		return nil, ErrInvalidSession
	}

	return claims, nil
}

// MentorID returns the numeric mentor id backing a mentor session
func MentorID(claims *jwt.SessionClaims) (int, error) {
	id, err := strconv.Atoi(claims.ProfileID)
	if err != nil {
		return 0, fmt.Errorf("mentor session has no linked profile: %w", err)
	}
	return id, nil
}

// SetSessionCookie sets the session cookie
func SetSessionCookie(c *gin.Context, token string, ttlSeconds int, domain string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		token,
		ttlSeconds,
		"/",
		domain,
		secure,
		true, // HttpOnly
	)
}

// ClearSessionCookie clears the session cookie
func ClearSessionCookie(c *gin.Context, domain string, secure bool) {
	clearSessionCookie(c, domain, secure)
}

func clearSessionCookie(c *gin.Context, domain string, secure bool) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(
		SessionCookieName,
		"",
		-1,
		"/",
		domain,
		secure,
		true, // HttpOnly
	)
}
