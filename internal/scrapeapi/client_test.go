package scrapeapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/fail"
)

func TestNewWithoutKeys(t *testing.T) {
	if c := New("https://api.example.com", nil); c != nil {
		t.Error("New() with no keys should return nil")
	}
	if (*Client)(nil).Configured() {
		t.Error("nil client reported configured")
	}
}

func TestRenderSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("url"); got != "https://target.example.com" {
			t.Errorf("url param = %q", got)
		}
		if got := r.URL.Query().Get("render"); got != "true" {
			t.Errorf("render param = %q", got)
		}
		w.Write([]byte("<html><body>rendered</body></html>"))
	}))
	defer srv.Close()

	c := New(srv.URL, []string{"key-1"})
	html, err := c.Render(context.Background(), "https://target.example.com")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if !strings.Contains(html, "rendered") {
		t.Errorf("Render() = %q", html)
	}
}

func TestRenderRotatesKeysOnAuthFailure(t *testing.T) {
	var keysSeen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("api_key")
		keysSeen = append(keysSeen, key)
		if key == "bad-key" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	c := New(srv.URL, []string{"bad-key", "good-key"})
	html, err := c.Render(context.Background(), "https://target.example.com")
	if err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if html == "" {
		t.Error("Render() returned empty html")
	}
	if len(keysSeen) != 2 || keysSeen[0] != "bad-key" || keysSeen[1] != "good-key" {
		t.Errorf("keys tried: %v, want [bad-key good-key]", keysSeen)
	}

	// the rotated index sticks for the next call
	keysSeen = nil
	if _, err := c.Render(context.Background(), "https://target.example.com"); err != nil {
		t.Fatalf("second Render() error = %v", err)
	}
	if len(keysSeen) != 1 || keysSeen[0] != "good-key" {
		t.Errorf("second call keys: %v, want [good-key]", keysSeen)
	}
}

func TestRenderRotatesOnRateLimit(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := New(srv.URL, []string{"k1", "k2", "k3"})
	_, err := c.Render(context.Background(), "https://target.example.com")
	if !fail.Is(err, fail.RateLimited) {
		t.Errorf("exhausted keys classified as %v, want rate_limited", err)
	}
	if calls != 3 {
		t.Errorf("calls = %d, want one per key", calls)
	}
}

func TestRenderDoesNotRotateOnOtherFailures(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := New(srv.URL, []string{"k1", "k2"})
	_, err := c.Render(context.Background(), "https://target.example.com")
	if !fail.Is(err, fail.NetworkError) {
		t.Errorf("server error classified as %v, want network_error", err)
	}
	if calls != 1 {
		t.Errorf("calls = %d, want 1 (no rotation on 5xx)", calls)
	}
}

func TestRenderEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	c := New(srv.URL, []string{"k"})
	_, err := c.Render(context.Background(), "https://target.example.com")
	if !fail.Is(err, fail.ParseFailure) {
		t.Errorf("empty body classified as %v, want parse_failure", err)
	}
}
