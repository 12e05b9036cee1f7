package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"studiolens/api/internal/models"
	"studiolens/api/internal/security"
	"studiolens/api/internal/service"
)

func (h HandlerSet) ListSessions(c *gin.Context) {
	sessions, err := h.sessionSvc.List(c.Request.Context())
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	if sessions == nil {
		sessions = []models.PhotoSession{}
	}

	c.JSON(http.StatusOK, gin.H{"sessions": sessions})
}

type createSessionRequest struct {
	Name            string             `json:"name" binding:"required"`
	Type            string             `json:"type"`
	Date            time.Time          `json:"date"`
	Mode            models.SessionMode `json:"mode"`
	PackageLimit    int                `json:"packageLimit"`
	ExtraPhotoPrice float64            `json:"extraPhotoPrice"`
	CanShare        bool               `json:"canShare"`
}

func (h HandlerSet) CreateSession(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessionSvc.Create(c.Request.Context(), service.CreateSessionInput{
		Name:            req.Name,
		Type:            req.Type,
		Date:            req.Date,
		Mode:            req.Mode,
		PackageLimit:    req.PackageLimit,
		ExtraPhotoPrice: req.ExtraPhotoPrice,
		CanShare:        req.CanShare,
	})
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "session": session})
}

type updateSessionRequest struct {
	Name            *string             `json:"name"`
	Type            *string             `json:"type"`
	Date            *time.Time          `json:"date"`
	Mode            *models.SessionMode `json:"mode"`
	PackageLimit    *int                `json:"packageLimit"`
	ExtraPhotoPrice *float64            `json:"extraPhotoPrice"`
	CanShare        *bool               `json:"canShare"`
	IsActive        *bool               `json:"isActive"`
}

func (h HandlerSet) UpdateSession(c *gin.Context) {
	var req updateSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessionSvc.Update(c.Request.Context(), c.Param("id"), service.UpdateSessionInput{
		Name:            req.Name,
		Type:            req.Type,
		Date:            req.Date,
		Mode:            req.Mode,
		PackageLimit:    req.PackageLimit,
		ExtraPhotoPrice: req.ExtraPhotoPrice,
		CanShare:        req.CanShare,
		IsActive:        req.IsActive,
	})
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "session": session})
}

func (h HandlerSet) DeleteSession(c *gin.Context) {
	if err := h.sessionSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h HandlerSet) ReopenSelection(c *gin.Context) {
	session, err := h.sessionSvc.Reopen(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "session": session})
}

func (h HandlerSet) DeliverSession(c *gin.Context) {
	session, err := h.sessionSvc.Deliver(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "session": session})
}

// ExportSelection streams the selected filenames as a text attachment. The
// token can arrive as a query parameter so the admin UI can hand out a plain
// download link.
func (h HandlerSet) ExportSelection(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		if header := c.GetHeader("Authorization"); len(header) > 7 && header[:7] == "Bearer " {
			token = header[7:]
		}
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing_token"})
		return
	}
	if _, err := security.ParseAdminToken(token, h.cfg.Security.JWTSecret); err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "invalid_token"})
		return
	}

	result, err := h.sessionSvc.Export(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", result.Filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(result.Content))
}

func (h HandlerSet) UploadPhotos(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "multipart_form_required"})
		return
	}

	files := form.File["photos"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "photos_required"})
		return
	}
	if len(files) > h.cfg.Upload.MaxFiles {
		c.JSON(http.StatusBadRequest, gin.H{"error": "too_many_files"})
		return
	}
	for _, f := range files {
		if f.Size > h.cfg.Upload.MaxFileSize {
			c.JSON(http.StatusBadRequest, gin.H{"error": "file_too_large"})
			return
		}
	}

	photos, err := h.sessionSvc.AddPhotos(c.Request.Context(), c.Param("id"), files)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "photos": photos})
}

func (h HandlerSet) RemovePhoto(c *gin.Context) {
	if err := h.sessionSvc.RemovePhoto(c.Request.Context(), c.Param("id"), c.Param("photoId")); err != nil {
		h.abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
