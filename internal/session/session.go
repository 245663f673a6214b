// Package session implements cookie-based caller identity.
// The session id is an opaque token issued at user creation; it is never
// verified against the users table. Presence of the cookie is the whole
// access-control check.
package session

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CookieName is the cookie carrying the caller's session id.
const CookieName = "sessionId"

const contextKey = "session_id"

// NewID mints a fresh session identifier.
func NewID() string {
	return uuid.New().String()
}

// Issue sets the session cookie on the response. Path is "/" so the
// cookie rides every request.
func Issue(c *gin.Context, sessionID string, maxAge time.Duration, secure bool) {
	c.SetCookie(CookieName, sessionID, int(maxAge.Seconds()), "/", "", secure, false)
}

// Required aborts requests that carry no session cookie. Any present
// cookie value is accepted as the caller's identity and stored in the
// request context.
func Required() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(CookieName)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Unauthorized.",
			})
			return
		}

		c.Set(contextKey, sessionID)
		c.Next()
	}
}

// FromContext returns the caller's session id set by Required.
func FromContext(c *gin.Context) (string, bool) {
	value, exists := c.Get(contextKey)
	if !exists {
		return "", false
	}
	sessionID, ok := value.(string)
	return sessionID, ok
}
