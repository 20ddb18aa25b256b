package middleware

import (
	"net/http"
	"strings"

	"securecheck/services"

	"github.com/gin-gonic/gin"
)

// RequireToken rejects requests without a valid "Bearer" token. When enabled
// is false it lets everything through.
func RequireToken(auth *services.AuthService, enabled bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !enabled {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		tokenStr, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenStr == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		claims, err := auth.ValidateToken(tokenStr)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid or expired token"})
			return
		}
		c.Set("operator", claims.Username)
		c.Next()
	}
}
