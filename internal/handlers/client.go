package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studiolens/api/internal/models"
	"studiolens/api/internal/repository"
)

type verifyCodeRequest struct {
	AccessCode string `json:"accessCode" binding:"required"`
}

func (h HandlerSet) VerifyAccessCode(c *gin.Context) {
	var req verifyCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "access_code_required"})
		return
	}

	session, err := h.gallery.VerifyCode(c.Request.Context(), req.AccessCode)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid_code"})
			return
		}
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"sessionId":       session.ID,
		"clientName":      session.Name,
		"mode":            session.Mode,
		"selectionStatus": session.SelectionStatus,
	})
}

type galleryResponse struct {
	Photos          []models.Photo         `json:"photos"`
	SelectedPhotos  []string               `json:"selectedPhotos"`
	Mode            models.SessionMode     `json:"mode"`
	SelectionStatus models.SelectionStatus `json:"selectionStatus"`
	Watermark       bool                   `json:"watermark"`
	PackageLimit    int                    `json:"packageLimit"`
	ExtraPhotoPrice float64                `json:"extraPhotoPrice"`
}

func (h HandlerSet) ClientGallery(c *gin.Context) {
	session, err := h.gallery.Gallery(c.Request.Context(), c.Param("id"), c.Query("code"))
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, galleryResponse{
		Photos:          emptyIfNilPhotos(session.Photos),
		SelectedPhotos:  emptyIfNil(session.SelectedPhotos),
		Mode:            session.Mode,
		SelectionStatus: session.SelectionStatus,
		Watermark:       session.Watermark,
		PackageLimit:    session.PackageLimit,
		ExtraPhotoPrice: session.ExtraPhotoPrice,
	})
}

type selectPhotoRequest struct {
	PhotoID    string `json:"photoId" binding:"required"`
	Selected   *bool  `json:"selected" binding:"required"`
	AccessCode string `json:"accessCode" binding:"required"`
}

func (h HandlerSet) SelectPhoto(c *gin.Context) {
	var req selectPhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.gallery.TogglePhoto(c.Request.Context(), c.Param("id"), req.PhotoID, *req.Selected, req.AccessCode)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":         true,
		"selectedPhotos":  emptyIfNil(session.SelectedPhotos),
		"selectedCount":   len(session.SelectedPhotos),
		"selectionStatus": session.SelectionStatus,
	})
}

type accessCodeRequest struct {
	AccessCode string `json:"accessCode" binding:"required"`
}

func (h HandlerSet) SubmitSelection(c *gin.Context) {
	var req accessCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "access_code_required"})
		return
	}

	session, extras, err := h.gallery.SubmitSelection(c.Request.Context(), c.Param("id"), req.AccessCode)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       true,
		"selectedCount": len(session.SelectedPhotos),
		"extras":        extras,
		"submittedAt":   session.SelectionSubmittedAt,
	})
}

func (h HandlerSet) RequestReopen(c *gin.Context) {
	var req accessCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "access_code_required"})
		return
	}

	if err := h.gallery.RequestReopen(c.Request.Context(), c.Param("id"), req.AccessCode); err != nil {
		h.abortWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func emptyIfNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}

func emptyIfNilPhotos(photos []models.Photo) []models.Photo {
	if photos == nil {
		return []models.Photo{}
	}
	return photos
}
