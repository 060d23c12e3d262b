// Package scrapeapi renders URLs through a third-party scraping service.
// It is the fallback for pages that block direct fetches and for deployments
// without a local browser.
package scrapeapi

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/fail"
)

// Client calls a ScraperAPI-compatible rendering endpoint. Several API keys
// may be configured; auth and rate-limit failures rotate to the next key
// before the strategy is given up.
type Client struct {
	BaseURL    string
	Keys       []string
	HTTPClient *http.Client

	current atomic.Int64 // index of the key currently in use
}

// New creates a client, nil when no keys are configured
func New(baseURL string, keys []string) *Client {
	if len(keys) == 0 {
		return nil
	}
	return &Client{BaseURL: baseURL, Keys: keys}
}

// Render fetches the fully-rendered HTML of a URL through the service
func (c *Client) Render(ctx context.Context, target string) (string, error) {
	var lastErr error

	for attempt := 0; attempt < len(c.Keys); attempt++ {
		idx := int(c.current.Load()) % len(c.Keys)
		html, err := c.renderWithKey(ctx, target, c.Keys[idx])
		if err == nil {
			return html, nil
		}
		lastErr = err

		kind := fail.KindOf(err)
		if kind != fail.AuthRequired && kind != fail.RateLimited {
			return "", err
		}
		// Rotate and retry with the next configured key
		c.current.Store(int64((idx + 1) % len(c.Keys)))
		log.Warn().Int("key_index", idx).Str("kind", string(kind)).
			Msg("scraping api key rejected, rotating")
	}

	return "", lastErr
}

func (c *Client) renderWithKey(ctx context.Context, target, key string) (string, error) {
	q := url.Values{}
	q.Set("api_key", key)
	q.Set("url", target)
	q.Set("render", "true")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.BaseURL+"/?"+q.Encode(), nil)
	if err != nil {
		return "", err
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fail.New(fail.NetworkError, err)
	}
	defer resp.Body.Close()

	if kind := fail.FromStatus(resp.StatusCode); kind != "" {
		return "", fail.Newf(kind, "scraping api status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fail.New(fail.NetworkError, err)
	}
	if len(body) == 0 {
		return "", fail.Newf(fail.ParseFailure, "scraping api returned empty body")
	}
	return string(body), nil
}

// Configured reports whether the client can be used
func (c *Client) Configured() bool {
	return c != nil && len(c.Keys) > 0
}
