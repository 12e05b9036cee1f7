package jobs

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"studiolens/api/internal/notify"
	"studiolens/api/internal/repository"
)

// Scheduler keeps the admin notification badge warm: the count is recomputed
// once a minute so the badge poll almost always hits the cache.
type Scheduler struct {
	cron          *cron.Cron
	notifications *repository.NotificationRepository
	cache         *redis.Client
	log           zerolog.Logger
}

func NewScheduler(notifications *repository.NotificationRepository, cache *redis.Client, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:          cron.New(cron.WithSeconds()),
		notifications: notifications,
		cache:         cache,
		log:           log,
	}
}

func (s *Scheduler) Start() error {
	if s.cache == nil {
		return nil
	}

	if _, err := s.cron.AddFunc("0 * * * * *", s.refreshBadge); err != nil {
		return err
	}

	s.cron.Start()
	return nil
}

// Stop waits briefly for a running refresh to finish.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	select {
	case <-ctx.Done():
	case <-time.After(5 * time.Second):
	}
}

func (s *Scheduler) refreshBadge() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	count, err := s.notifications.CountUnread(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("badge refresh count failed")
		return
	}

	if err := s.cache.Set(ctx, notify.UnreadCountKey, count, 2*time.Minute).Err(); err != nil {
		s.log.Warn().Err(err).Msg("badge refresh cache write failed")
	}
}
