package middleware

import (
	"net/http"
	"strings"

	"viewerhub/internal/service"

	"github.com/gin-gonic/gin"
)

// RequireAdmin guards mutating routes with a bearer token signed by the
// configured secret. The subject lands in the context as "admin_subject".
func RequireAdmin(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		subject, err := service.ParseAdminToken(secret, token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set("admin_subject", subject)
		c.Next()
	}
}
