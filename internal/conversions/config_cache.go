package conversions

import (
	"context"
	"sync"
	"time"

	"studiolens/api/internal/models"
)

// Config is a resolved pixel id / access token pair.
type Config struct {
	PixelID     string
	AccessToken string
}

// SettingsSource yields the site settings document holding the managed pixel
// configuration.
type SettingsSource interface {
	Get(ctx context.Context) (models.SiteSettings, error)
}

// ConfigCache resolves the Conversions API credentials at most once per TTL.
// Resolution order: enabled settings-document config, then the static
// fallback from app config, then disabled. A disabled result is cached too,
// so a misconfigured integration does not hammer the database.
type ConfigCache struct {
	source   SettingsSource
	fallback Config
	ttl      time.Duration
	now      func() time.Time

	mu        sync.Mutex
	resolved  Config
	enabled   bool
	fetchedAt time.Time
	fresh     bool
}

func NewConfigCache(source SettingsSource, fallback Config, ttl time.Duration) *ConfigCache {
	return &ConfigCache{
		source:   source,
		fallback: fallback,
		ttl:      ttl,
		now:      time.Now,
	}
}

// Get returns the current credentials and whether the integration is enabled.
func (c *ConfigCache) Get(ctx context.Context) (Config, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fresh && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.resolved, c.enabled
	}

	c.resolved, c.enabled = c.resolve(ctx)
	c.fetchedAt = c.now()
	c.fresh = true
	return c.resolved, c.enabled
}

// Invalidate forces the next Get to re-read the settings document.
func (c *ConfigCache) Invalidate() {
	c.mu.Lock()
	c.fresh = false
	c.mu.Unlock()
}

func (c *ConfigCache) resolve(ctx context.Context) (Config, bool) {
	if c.source != nil {
		settings, err := c.source.Get(ctx)
		if err == nil {
			meta := settings.Integrations.MetaPixel
			if meta.Enabled && meta.PixelID != "" && meta.AccessToken != "" {
				return Config{PixelID: meta.PixelID, AccessToken: meta.AccessToken}, true
			}
		}
	}

	if c.fallback.PixelID != "" && c.fallback.AccessToken != "" {
		return c.fallback, true
	}
	return Config{}, false
}
