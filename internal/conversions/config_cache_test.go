package conversions

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studiolens/api/internal/models"
)

type fakeSettings struct {
	settings models.SiteSettings
	err      error
	calls    int
}

func (f *fakeSettings) Get(context.Context) (models.SiteSettings, error) {
	f.calls++
	return f.settings, f.err
}

func enabledSettings(pixelID, token string) models.SiteSettings {
	var s models.SiteSettings
	s.Integrations.MetaPixel = models.MetaPixelSettings{
		Enabled:     true,
		PixelID:     pixelID,
		AccessToken: token,
	}
	return s
}

func TestConfigCache(t *testing.T) {
	ctx := context.Background()

	t.Run("serves managed settings and caches within the TTL", func(t *testing.T) {
		source := &fakeSettings{settings: enabledSettings("px-1", "tok-1")}
		cache := NewConfigCache(source, Config{}, 5*time.Minute)
		now := time.Unix(1_000, 0)
		cache.now = func() time.Time { return now }

		cfg, ok := cache.Get(ctx)
		require.True(t, ok)
		assert.Equal(t, Config{PixelID: "px-1", AccessToken: "tok-1"}, cfg)

		now = now.Add(4 * time.Minute)
		_, _ = cache.Get(ctx)
		assert.Equal(t, 1, source.calls)
	})

	t.Run("re-reads after the TTL elapses", func(t *testing.T) {
		source := &fakeSettings{settings: enabledSettings("px-1", "tok-1")}
		cache := NewConfigCache(source, Config{}, 5*time.Minute)
		now := time.Unix(1_000, 0)
		cache.now = func() time.Time { return now }

		_, _ = cache.Get(ctx)
		now = now.Add(6 * time.Minute)
		_, _ = cache.Get(ctx)

		assert.Equal(t, 2, source.calls)
	})

	t.Run("invalidate forces a refetch", func(t *testing.T) {
		source := &fakeSettings{settings: enabledSettings("px-1", "tok-1")}
		cache := NewConfigCache(source, Config{}, 5*time.Minute)

		_, _ = cache.Get(ctx)
		cache.Invalidate()
		_, _ = cache.Get(ctx)

		assert.Equal(t, 2, source.calls)
	})

	t.Run("falls back to static config when settings are disabled", func(t *testing.T) {
		source := &fakeSettings{settings: models.SiteSettings{}}
		fallback := Config{PixelID: "px-env", AccessToken: "tok-env"}
		cache := NewConfigCache(source, fallback, time.Minute)

		cfg, ok := cache.Get(ctx)

		require.True(t, ok)
		assert.Equal(t, fallback, cfg)
	})

	t.Run("falls back when the settings read fails", func(t *testing.T) {
		source := &fakeSettings{err: errors.New("db down")}
		fallback := Config{PixelID: "px-env", AccessToken: "tok-env"}
		cache := NewConfigCache(source, fallback, time.Minute)

		cfg, ok := cache.Get(ctx)

		require.True(t, ok)
		assert.Equal(t, fallback, cfg)
	})

	t.Run("disabled result is cached too", func(t *testing.T) {
		source := &fakeSettings{settings: models.SiteSettings{}}
		cache := NewConfigCache(source, Config{}, time.Minute)
		now := time.Unix(1_000, 0)
		cache.now = func() time.Time { return now }

		_, ok := cache.Get(ctx)
		assert.False(t, ok)
		_, ok = cache.Get(ctx)
		assert.False(t, ok)

		assert.Equal(t, 1, source.calls)
	})
}
