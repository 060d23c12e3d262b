package captions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestDownload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Referer") != "https://www.youtube.com/" {
			t.Errorf("referer = %q", r.Header.Get("Referer"))
		}
		w.Write([]byte(`<transcript><text start="0" dur="2">hello</text><text start="2" dur="2">there</text></transcript>`))
	}))
	defer srv.Close()

	text, err := Download(context.Background(), srv.Client(), Track{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if text != "hello there" {
		t.Errorf("Download() = %q", text)
	}
}

func TestDownloadNon2xxIsSoftFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	text, err := Download(context.Background(), srv.Client(), Track{BaseURL: srv.URL})
	if err != nil {
		t.Fatalf("Download() error = %v, want nil on non-2xx", err)
	}
	if text != "" {
		t.Errorf("Download() = %q, want empty", text)
	}
}

func TestDownloadUnescapesBaseURL(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`<text>ok fine</text>`))
	}))
	defer srv.Close()

	// JSON-embedded locator with & in place of &
	track := Track{BaseURL: srv.URL + `/timedtext?v=abc&lang=en`}
	if _, err := Download(context.Background(), srv.Client(), track); err != nil {
		t.Fatalf("Download() error = %v", err)
	}
	if gotQuery != "v=abc&lang=en" {
		t.Errorf("query = %q, want unescaped ampersand", gotQuery)
	}
}
