package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"studiolens/api/internal/security"
)

type loginRequest struct {
	Password string `json:"password" binding:"required"`
}

// Login authenticates the studio admin with the single shared password and
// issues a bearer token.
func (h HandlerSet) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password_required"})
		return
	}

	valid := false
	if hash := h.cfg.Security.AdminPasswordHash; hash != "" {
		ok, err := security.VerifyPassword(req.Password, hash)
		if err != nil {
			h.log.Error().Err(err).Msg("admin password hash unreadable")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
			return
		}
		valid = ok
	} else {
		valid = security.ComparePlaintext(req.Password, h.cfg.Security.AdminPassword)
	}

	if !valid {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_password"})
		return
	}

	token, err := security.GenerateAdminToken(h.cfg.Security.JWTSecret, h.cfg.Security.JWTTTL)
	if err != nil {
		h.log.Error().Err(err).Msg("token generation failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal_error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "token": token})
}

type verifyTokenRequest struct {
	Token string `json:"token"`
}

// VerifyToken lets the admin UI check a stored token without hitting a
// protected route.
func (h HandlerSet) VerifyToken(c *gin.Context) {
	var req verifyTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Token == "" {
		c.JSON(http.StatusOK, gin.H{"valid": false})
		return
	}

	_, err := security.ParseAdminToken(req.Token, h.cfg.Security.JWTSecret)
	c.JSON(http.StatusOK, gin.H{"valid": err == nil})
}
