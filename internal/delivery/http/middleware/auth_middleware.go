package middleware

import (
	"net/http"
	"strings"

	"teammatch-backend/internal/delivery/http/response"
	"teammatch-backend/internal/domain"
	"teammatch-backend/pkg/token"

	"github.com/gin-gonic/gin"
)

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	cookie, err := c.Cookie("auth_token")
	if err == nil && cookie != "" {
		return cookie
	}
	return ""
}

// AuthMiddleware requires a valid access token and stores the caller
// identity on the context.
func AuthMiddleware(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "Authorization header or auth_token cookie required")
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenString)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "Invalid token")
			c.Abort()
			return
		}

		c.Set(string(domain.KeyUserID), claims.UserID)
		c.Next()
	}
}

// OptionalAuthMiddleware attaches the caller identity when a valid token
// is present but never rejects the request. Public listing endpoints use
// it so anonymous and logged-in traffic share a handler.
func OptionalAuthMiddleware(tokens *token.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractToken(c)
		if tokenString != "" {
			if claims, err := tokens.Parse(tokenString); err == nil {
				c.Set(string(domain.KeyUserID), claims.UserID)
			}
		}
		c.Next()
	}
}
