package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/fenceplan/fenceplan/internal/models"
	"github.com/fenceplan/fenceplan/pkg/response"
)

const ContextUserID = "user_id"

// SessionValidator checks a session id against the session store.
type SessionValidator interface {
	ValidateSession(sessionID string) (*models.Session, error)
}

// SessionRequired rejects requests that do not carry a valid session cookie.
func SessionRequired(cookieName string, validator SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cookieName)
		if err != nil || sessionID == "" {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		session, err := validator.ValidateSession(sessionID)
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}
		if session == nil {
			response.Unauthorized(c, "Authentication required")
			c.Abort()
			return
		}

		c.Set(ContextUserID, session.UserID)
		c.Next()
	}
}

// SessionOptional resolves the session cookie when present but lets
// anonymous requests through. Handlers decide what anonymous access means.
func SessionOptional(cookieName string, validator SessionValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(cookieName)
		if err == nil && sessionID != "" {
			session, err := validator.ValidateSession(sessionID)
			if err == nil && session != nil {
				c.Set(ContextUserID, session.UserID)
			}
		}
		c.Next()
	}
}

// CurrentUserID returns the authenticated user id, or nil for anonymous
// requests.
func CurrentUserID(c *gin.Context) *string {
	if id, exists := c.Get(ContextUserID); exists {
		if s, ok := id.(string); ok && s != "" {
			return &s
		}
	}
	return nil
}
