package notify

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"studiolens/api/internal/ids"
	"studiolens/api/internal/models"
	"studiolens/api/internal/repository"
)

// UnreadCountKey caches the admin badge count. The notifier drops it on every
// new event so the next badge poll recounts.
const UnreadCountKey = "notifications:unread"

// Notifier records audit events for admin visibility. Notifications are
// observational: a failure here is logged and discarded, never surfaced to
// the operation that triggered it.
type Notifier struct {
	notifications *repository.NotificationRepository
	cache         *redis.Client
	log           zerolog.Logger
}

func New(notifications *repository.NotificationRepository, cache *redis.Client, log zerolog.Logger) *Notifier {
	return &Notifier{
		notifications: notifications,
		cache:         cache,
		log:           log,
	}
}

func (n *Notifier) Notify(ctx context.Context, typ models.NotificationType, sessionID, sessionName, message string) {
	notification := models.Notification{
		ID:          ids.New(),
		Type:        typ,
		SessionID:   sessionID,
		SessionName: sessionName,
		Message:     message,
		CreatedAt:   time.Now().UTC(),
	}

	if err := n.notifications.Create(ctx, notification); err != nil {
		n.log.Warn().Err(err).
			Str("type", string(typ)).
			Str("session_id", sessionID).
			Msg("notification write failed")
		return
	}

	if n.cache != nil {
		if err := n.cache.Del(ctx, UnreadCountKey).Err(); err != nil {
			n.log.Debug().Err(err).Msg("badge cache invalidation failed")
		}
	}
}
