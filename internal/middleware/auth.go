package middleware

import (
	"strings"

	"github.com/Javets70/url-shortner-backend/internal/auth"
	"github.com/Javets70/url-shortner-backend/pkg/response"
	"github.com/gin-gonic/gin"
)

const userIDKey = "user_id"

// RequireAuth validates the bearer token and stores the owner id on the
// request context.
func RequireAuth(tokens *auth.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			response.Unauthorized(c, "Missing or malformed authorization header")
			c.Abort()
			return
		}

		claims, err := tokens.Verify(token)
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set(userIDKey, claims.UserID)
		c.Next()
	}
}

// OwnerID returns the authenticated owner id set by RequireAuth.
func OwnerID(c *gin.Context) int64 {
	if id, ok := c.Get(userIDKey); ok {
		if userID, ok := id.(int64); ok {
			return userID
		}
	}
	return 0
}
