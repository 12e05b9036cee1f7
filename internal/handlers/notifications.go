package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"studiolens/api/internal/models"
	"studiolens/api/internal/notify"
)

const badgeCacheTTL = time.Minute

func (h HandlerSet) ListNotifications(c *gin.Context) {
	notifications, err := h.notifications.ListRecent(c.Request.Context(), 50)
	if err != nil {
		h.abortWithError(c, err)
		return
	}
	if notifications == nil {
		notifications = []models.Notification{}
	}

	c.JSON(http.StatusOK, gin.H{"notifications": notifications})
}

// UnreadNotificationCount backs the admin badge poll, so the count is served
// from redis when fresh.
func (h HandlerSet) UnreadNotificationCount(c *gin.Context) {
	ctx := c.Request.Context()

	if cached, err := h.cache.Get(ctx, notify.UnreadCountKey).Result(); err == nil {
		if count, err := strconv.ParseInt(cached, 10, 64); err == nil {
			c.JSON(http.StatusOK, gin.H{"count": count})
			return
		}
	} else if err != redis.Nil {
		h.log.Debug().Err(err).Msg("badge cache read failed")
	}

	count, err := h.notifications.CountUnread(ctx)
	if err != nil {
		h.abortWithError(c, err)
		return
	}

	if err := h.cache.Set(ctx, notify.UnreadCountKey, count, badgeCacheTTL).Err(); err != nil {
		h.log.Debug().Err(err).Msg("badge cache write failed")
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}

func (h HandlerSet) MarkNotificationsRead(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.notifications.MarkAllRead(ctx); err != nil {
		h.abortWithError(c, err)
		return
	}

	if err := h.cache.Del(ctx, notify.UnreadCountKey).Err(); err != nil {
		h.log.Debug().Err(err).Msg("badge cache invalidation failed")
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func (h HandlerSet) DeleteNotification(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.notifications.Delete(ctx, c.Param("id")); err != nil {
		h.abortWithError(c, err)
		return
	}

	if err := h.cache.Del(ctx, notify.UnreadCountKey).Err(); err != nil {
		h.log.Debug().Err(err).Msg("badge cache invalidation failed")
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
