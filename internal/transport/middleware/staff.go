package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
)

// StaffAuth защищает административные маршруты общим токеном персонала.
// Токен передается в заголовке X-Staff-Token.
func StaffAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{
				"success": false,
				"error":   "staff access is not configured",
			})
			return
		}

		got := c.GetHeader("X-Staff-Token")
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error":   "invalid staff token",
			})
			return
		}

		c.Next()
	}
}
