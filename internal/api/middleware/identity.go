package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"muniportal/internal/auth"
)

// CallerIDKey is the context key under which Identify stores the caller's
// user ID for endpoints that log activity per user.
const CallerIDKey = "caller_id"

// Identify resolves the caller's user ID for lookup endpoints without
// requiring full authentication. Precedence: authenticated session, then
// the x-user-id header, then the userId query parameter. Handlers decide
// what to do when no identity resolves.
func (m *AuthMiddleware) Identify() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := m.resolveUser(c); user != nil {
			c.Set("user", user)
			c.Set(CallerIDKey, user.ID)
			c.Next()
			return
		}

		if raw := c.GetHeader("x-user-id"); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				c.Set(CallerIDKey, id)
				c.Next()
				return
			}
		}

		if raw := c.Query("userId"); raw != "" {
			if id, err := uuid.Parse(raw); err == nil {
				c.Set(CallerIDKey, id)
			}
		}

		c.Next()
	}
}

// CallerID returns the resolved caller ID, if any
func CallerID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(CallerIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

// CallerActor returns the best available actor label for audit records:
// the authenticated user's email, else the resolved caller ID, else "".
func CallerActor(c *gin.Context) string {
	if user := auth.GetUserFromContext(c); user != nil {
		return user.Email
	}
	if id, ok := CallerID(c); ok {
		return id.String()
	}
	return ""
}
