// Package videoapi talks to the official YouTube Data API for
// metadata-level extraction.
package videoapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/fail"
)

const endpoint = "https://www.googleapis.com/youtube/v3/videos"

var videoIDRe = regexp.MustCompile(`(?:v=|youtu\.be/|shorts/|live/|embed/)([A-Za-z0-9_-]{11})`)

// VideoID extracts the 11-character video id from a YouTube URL
func VideoID(rawURL string) (string, bool) {
	m := videoIDRe.FindStringSubmatch(rawURL)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// Client queries the YouTube Data API v3
type Client struct {
	APIKey     string
	BaseURL    string // defaults to the official endpoint
	HTTPClient *http.Client
}

// Snippet is the metadata returned for a video
type Snippet struct {
	Title        string
	Description  string
	ChannelTitle string
}

// Fetch returns the snippet for a video URL
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Snippet, error) {
	id, ok := VideoID(rawURL)
	if !ok {
		return nil, fail.Newf(fail.ParseFailure, "no video id in url")
	}

	q := url.Values{}
	q.Set("part", "snippet")
	q.Set("id", id)
	q.Set("key", c.APIKey)

	base := c.BaseURL
	if base == "" {
		base = endpoint
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}

	client := c.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fail.New(fail.NetworkError, err)
	}
	defer resp.Body.Close()

	if kind := fail.FromStatus(resp.StatusCode); kind != "" {
		return nil, fail.Newf(kind, "youtube api status %d", resp.StatusCode)
	}

	var body struct {
		Items []struct {
			Snippet struct {
				Title        string `json:"title"`
				Description  string `json:"description"`
				ChannelTitle string `json:"channelTitle"`
			} `json:"snippet"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fail.New(fail.ParseFailure, fmt.Errorf("bad api response: %w", err))
	}
	if len(body.Items) == 0 {
		return nil, fail.Newf(fail.ParseFailure, "video %s not found via api", id)
	}

	s := body.Items[0].Snippet
	return &Snippet{
		Title:        s.Title,
		Description:  s.Description,
		ChannelTitle: s.ChannelTitle,
	}, nil
}
