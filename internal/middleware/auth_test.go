package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiolens/api/internal/config"
	"studiolens/api/internal/security"
)

func authTestRouter(secret string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	cfg := &config.AppConfig{}
	cfg.Security.JWTSecret = secret

	router := gin.New()
	router.GET("/admin", Auth(cfg), func(c *gin.Context) {
		claims, exists := c.Get(AdminClaimsKey)
		if !exists {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"admin": claims.(security.AdminClaims).Admin})
	})
	return router
}

func TestAuth(t *testing.T) {
	router := authTestRouter("test-secret")

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("malformed token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer garbage")

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("token signed with another secret", func(t *testing.T) {
		token, err := security.GenerateAdminToken("other-secret", time.Hour)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("valid token reaches the handler", func(t *testing.T) {
		token, err := security.GenerateAdminToken("test-secret", time.Hour)
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/admin", nil)
		req.Header.Set("Authorization", "Bearer "+token)

		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"admin": true}`, w.Body.String())
	})
}
