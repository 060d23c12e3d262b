package article

import (
	"context"
	"io"
	"net/http"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/fail"
)

// FetchHTML performs a plain HTTP GET and returns the raw page HTML.
// Used by the cheap no-browser article strategy.
func FetchHTML(ctx context.Context, client *http.Client, pageURL string) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := client.Do(req)
	if err != nil {
		return "", fail.New(fail.NetworkError, err)
	}
	defer resp.Body.Close()

	if kind := fail.FromStatus(resp.StatusCode); kind != "" {
		return "", fail.Newf(kind, "status %d fetching %s", resp.StatusCode, pageURL)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fail.New(fail.NetworkError, err)
	}
	return string(body), nil
}
