package captions

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Track points at a downloadable caption resource for a video
type Track struct {
	BaseURL      string
	LanguageCode string
	Name         string
}

const (
	fetchTimeout = 15 * time.Second
	userAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Download fetches a caption track and returns its plain text.
// A response that is missing, non-2xx, or yields no usable text is a soft
// failure: the result is "" with a nil error, and the caller treats it the
// same as a failed strategy. Only transport-level problems return an error.
func Download(ctx context.Context, client *http.Client, track Track) (string, error) {
	if client == nil {
		client = http.DefaultClient
	}

	ctx, cancel := context.WithTimeout(ctx, fetchTimeout)
	defer cancel()

	// Locator URLs extracted from embedded page data often carry escaped
	// unicode sequences (& for &)
	url := unescapeUnicode(track.BaseURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Referer", "https://www.youtube.com/")

	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	return ParseTimedText(string(body)), nil
}

// unescapeUnicode decodes \uXXXX escape sequences left over from JSON-embedded URLs
func unescapeUnicode(s string) string {
	if !strings.Contains(s, `\u`) {
		return s
	}

	var sb strings.Builder
	for i := 0; i < len(s); {
		if i+6 <= len(s) && s[i] == '\\' && s[i+1] == 'u' {
			if code, err := strconv.ParseUint(s[i+2:i+6], 16, 32); err == nil {
				sb.WriteRune(rune(code))
				i += 6
				continue
			}
		}
		sb.WriteByte(s[i])
		i++
	}
	return sb.String()
}
