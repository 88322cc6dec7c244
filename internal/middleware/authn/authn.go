// Package authn provides the identity middleware: it turns a Bearer token
// into the acting user's id on the request context.
package authn

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/gravadigital/conexa-api/internal/auth"
	"github.com/gravadigital/conexa-api/internal/response"
	"github.com/gravadigital/conexa-api/internal/storage/postgres"
)

// ContextUserID is the gin context key carrying the authenticated user id
const ContextUserID = "user_id"

// Identify parses the Authorization header when present and stores the user
// id in the context. It never rejects: endpoints that require identity use
// RequireAuth, and the scan endpoint reports the missing login in its own
// result shape.
func Identify(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if token, ok := strings.CutPrefix(header, "Bearer "); ok {
			if userID, err := tokens.Validate(token); err == nil {
				c.Set(ContextUserID, userID)
			}
		}
		c.Next()
	}
}

// RequireAuth aborts with 401 unless Identify resolved a user
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if UserID(c) == uuid.Nil {
			response.UnauthorizedError(c, "authentication required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts with 403 unless the authenticated user has the admin
// role.
func RequireAdmin(profiles postgres.ProfileRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := UserID(c)
		if userID == uuid.Nil {
			response.UnauthorizedError(c, "authentication required")
			c.Abort()
			return
		}

		p, err := profiles.GetByID(userID)
		if err != nil || !p.IsAdmin() {
			response.ForbiddenError(c, "admin access required")
			c.Abort()
			return
		}

		c.Next()
	}
}

// UserID returns the authenticated user id, uuid.Nil when anonymous
func UserID(c *gin.Context) uuid.UUID {
	if value, exists := c.Get(ContextUserID); exists {
		if id, ok := value.(uuid.UUID); ok {
			return id
		}
	}
	return uuid.Nil
}
