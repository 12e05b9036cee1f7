package conversions

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const graphHost = "https://graph.facebook.com"

// Client relays server-side events to the Meta Conversions API. Every send is
// best-effort: failures are logged and swallowed so a tracking outage can
// never fail the operation that produced the event.
type Client struct {
	cache      *ConfigCache
	http       *http.Client
	apiVersion string
	log        zerolog.Logger
}

func NewClient(cache *ConfigCache, apiVersion string, timeout time.Duration, log zerolog.Logger) *Client {
	return &Client{
		cache:      cache,
		http:       &http.Client{Timeout: timeout},
		apiVersion: apiVersion,
		log:        log,
	}
}

type event struct {
	EventName    string         `json:"event_name"`
	EventTime    int64          `json:"event_time"`
	ActionSource string         `json:"action_source"`
	CustomData   map[string]any `json:"custom_data,omitempty"`
}

type payload struct {
	Data []event `json:"data"`
}

// SelectionCompleted reports a finished photo selection as a
// CompleteRegistration event, valued at the extras the client will pay for.
func (c *Client) SelectionCompleted(ctx context.Context, contentName string, value float64) {
	custom := map[string]any{
		"content_name": contentName,
	}
	if value > 0 {
		custom["value"] = value
		custom["currency"] = "BRL"
	}
	c.send(ctx, "CompleteRegistration", custom)
}

func (c *Client) send(ctx context.Context, eventName string, customData map[string]any) {
	cfg, enabled := c.cache.Get(ctx)
	if !enabled {
		return
	}

	body, err := json.Marshal(payload{Data: []event{{
		EventName:    eventName,
		EventTime:    time.Now().Unix(),
		ActionSource: "website",
		CustomData:   customData,
	}}})
	if err != nil {
		c.log.Warn().Err(err).Str("event", eventName).Msg("conversions payload marshal failed")
		return
	}

	url := fmt.Sprintf("%s/%s/%s/events?access_token=%s", graphHost, c.apiVersion, cfg.PixelID, cfg.AccessToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		c.log.Warn().Err(err).Str("event", eventName).Msg("conversions request build failed")
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Warn().Err(err).Str("event", eventName).Msg("conversions send failed")
		return
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		c.log.Warn().
			Int("status", resp.StatusCode).
			Str("event", eventName).
			Str("body", string(snippet)).
			Msg("conversions rejected")
		return
	}

	c.log.Debug().Str("event", eventName).Msg("conversion event sent")
}
