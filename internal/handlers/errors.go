package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"studiolens/api/internal/media/sniffer"
	"studiolens/api/internal/repository"
	"studiolens/api/internal/service"
)

// statusForError maps the domain failure taxonomy onto HTTP. Unknown errors
// stay internal.
func statusForError(err error) (int, string) {
	switch {
	case errors.Is(err, repository.ErrSessionNotFound):
		return http.StatusNotFound, "session_not_found"
	case errors.Is(err, service.ErrPhotoNotFound):
		return http.StatusNotFound, "photo_not_found"
	case errors.Is(err, repository.ErrNotificationNotFound):
		return http.StatusNotFound, "notification_not_found"
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden, "access_denied"
	case errors.Is(err, service.ErrInvalidMode):
		return http.StatusBadRequest, "not_selection_mode"
	case errors.Is(err, service.ErrAlreadyFinalized):
		return http.StatusConflict, "selection_finalized"
	case errors.Is(err, service.ErrEmptySelection):
		return http.StatusBadRequest, "empty_selection"
	case errors.Is(err, service.ErrInvalidTransition):
		return http.StatusBadRequest, "invalid_transition"
	case errors.Is(err, sniffer.ErrUnsupportedType):
		return http.StatusBadRequest, "unsupported_photo_type"
	}
	return http.StatusInternalServerError, "internal_error"
}

func (h HandlerSet) abortWithError(c *gin.Context, err error) {
	status, code := statusForError(err)
	if status == http.StatusInternalServerError {
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("request failed")
	}
	c.JSON(status, gin.H{"error": code})
}
