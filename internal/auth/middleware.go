package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ContextKeyAdmin carries the authenticated admin username.
const ContextKeyAdmin = "auth_admin_username"

// RequireAdmin rejects requests without a valid admin session.
func (sm *SessionManager) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		username := sm.GetUsername(c.Request)
		if username == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "authentication required",
			})
			return
		}
		c.Set(ContextKeyAdmin, username)
		c.Next()
	}
}
