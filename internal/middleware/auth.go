package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"studiolens/api/internal/config"
	"studiolens/api/internal/security"
)

const AdminClaimsKey = "admin_claims"

// Auth guards the admin surface with a bearer JWT. Client routes never pass
// through here; they authenticate with the session access code instead.
func Auth(cfg *config.AppConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
			return
		}

		tokenStr := strings.TrimPrefix(authHeader, "Bearer ")

		claims, err := security.ParseAdminToken(tokenStr, cfg.Security.JWTSecret)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "invalid_token"})
			return
		}

		c.Set(AdminClaimsKey, *claims)
		c.Next()
	}
}
