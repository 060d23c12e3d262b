package article

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/fail"
)

const samplePage = `<!DOCTYPE html>
<html>
<head><title>Sample Title</title></head>
<body>
<nav>Home About Contact</nav>
<article>
<h1>Sample Title</h1>
<p>This is the first paragraph of the article body with enough words to be treated as real content by the extractor.</p>
<p>This is the second paragraph, which continues the article with more meaningful text so readability keeps it.</p>
</article>
<footer>Copyright 2026</footer>
<script>trackEverything()</script>
</body>
</html>`

func TestFromHTML(t *testing.T) {
	text, err := FromHTML(samplePage, "https://example.com/post")
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	if !strings.Contains(text, "first paragraph of the article") {
		t.Errorf("article body missing: %q", text)
	}
	if strings.Contains(text, "trackEverything") {
		t.Errorf("script content leaked into text: %q", text)
	}
	if strings.Contains(text, "Copyright 2026") {
		t.Errorf("footer leaked into text: %q", text)
	}
}

func TestFromHTMLContentRegionFallback(t *testing.T) {
	// no readable structure, but a recognizable content container
	html := `<html><body>
<nav>menu menu menu</nav>
<div class="content">short body text</div>
</body></html>`

	text, err := FromHTML(html, "https://example.com/x")
	if err != nil {
		t.Fatalf("FromHTML() error = %v", err)
	}
	if !strings.Contains(text, "short body text") {
		t.Errorf("fallback text = %q", text)
	}
}

func TestFromHTMLEmpty(t *testing.T) {
	if _, err := FromHTML("<html><body></body></html>", "https://example.com"); err == nil {
		t.Error("FromHTML(empty page) error = nil, want parse failure")
	}
}

func TestFetchOpenGraph(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
<meta property="og:title" content="OG Title">
<meta property="og:description" content="OG Description">
<title>Fallback Title</title>
</head><body></body></html>`))
	}))
	defer srv.Close()

	og, err := FetchOpenGraph(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("FetchOpenGraph() error = %v", err)
	}
	if og.Title != "OG Title" || og.Description != "OG Description" {
		t.Errorf("FetchOpenGraph() = %+v", og)
	}
}

func TestFetchOpenGraphFallsBackToTitleTag(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><head>
<title>Plain Title</title>
<meta name="description" content="Plain description">
</head><body></body></html>`))
	}))
	defer srv.Close()

	og, err := FetchOpenGraph(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("FetchOpenGraph() error = %v", err)
	}
	if og.Title != "Plain Title" || og.Description != "Plain description" {
		t.Errorf("FetchOpenGraph() = %+v", og)
	}
}

func TestFetchOpenGraphNoTags(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>nothing here</body></html>`))
	}))
	defer srv.Close()

	_, err := FetchOpenGraph(context.Background(), srv.Client(), srv.URL)
	if !fail.Is(err, fail.ParseFailure) {
		t.Errorf("no tags classified as %v, want parse_failure", err)
	}
}

func TestFetchHTMLStatusClassification(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	_, err := FetchHTML(context.Background(), srv.Client(), srv.URL)
	if !fail.Is(err, fail.AuthRequired) {
		t.Errorf("403 classified as %v, want auth_required", err)
	}
}

func TestFetchHTMLSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.Contains(r.Header.Get("User-Agent"), "Chrome") {
			t.Errorf("unexpected user agent: %q", r.Header.Get("User-Agent"))
		}
		w.Write([]byte("<html><body>hi</body></html>"))
	}))
	defer srv.Close()

	html, err := FetchHTML(context.Background(), srv.Client(), srv.URL)
	if err != nil {
		t.Fatalf("FetchHTML() error = %v", err)
	}
	if !strings.Contains(html, "hi") {
		t.Errorf("FetchHTML() = %q", html)
	}
}
