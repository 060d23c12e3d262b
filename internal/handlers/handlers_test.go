package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/extract"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/storage"
)

type fakeExtractor struct {
	content extract.Content
}

func (f fakeExtractor) Extract(ctx context.Context, url string) extract.Content {
	return f.content
}

func testRepos(t *testing.T) (*storage.ExtractionRepository, *storage.JobRepository) {
	t.Helper()
	db, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return storage.NewExtractionRepository(db), storage.NewJobRepository(db)
}

func doJSON(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestExtractEndpoint(t *testing.T) {
	extractions, _ := testRepos(t)
	h := NewExtractHandler(
		fakeExtractor{content: extract.Content{Text: "the extracted text", Source: extract.SourceTranscript}},
		extractions)

	e := echo.New()
	e.POST("/api/extract", h.Extract)
	e.GET("/api/extractions/:id", h.Get)

	rec := doJSON(e, http.MethodPost, "/api/extract", `{"url":"https://www.youtube.com/watch?v=abc12345678"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		ID       string `json:"id"`
		Platform string `json:"platform"`
		Content  string `json:"content"`
		Source   string `json:"source"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if resp.Platform != "youtube" || resp.Content != "the extracted text" || resp.Source != "transcript" {
		t.Errorf("response = %+v", resp)
	}
	if resp.ID == "" {
		t.Fatal("extraction was not persisted")
	}

	// stored result is retrievable
	rec = doJSON(e, http.MethodGet, "/api/extractions/"+resp.ID, "")
	if rec.Code != http.StatusOK {
		t.Errorf("get stored extraction status = %d", rec.Code)
	}
}

func TestExtractEndpointValidation(t *testing.T) {
	extractions, _ := testRepos(t)
	h := NewExtractHandler(fakeExtractor{}, extractions)

	e := echo.New()
	e.POST("/api/extract", h.Extract)

	rec := doJSON(e, http.MethodPost, "/api/extract", `{"url":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty url status = %d, want 400", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, "/api/extract", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body status = %d, want 400", rec.Code)
	}
}

func TestExtractionNotFound(t *testing.T) {
	extractions, _ := testRepos(t)
	h := NewExtractHandler(fakeExtractor{}, extractions)

	e := echo.New()
	e.GET("/api/extractions/:id", h.Get)

	rec := doJSON(e, http.MethodGet, "/api/extractions/no-such-id", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestJobEndpoints(t *testing.T) {
	_, jobs := testRepos(t)
	h := NewJobHandler(jobs)

	e := echo.New()
	e.POST("/api/jobs", h.Create)
	e.GET("/api/jobs", h.List)
	e.GET("/api/jobs/:id", h.Get)

	rec := doJSON(e, http.MethodPost, "/api/jobs", `{"url":"https://example.com/v"}`)
	if rec.Code != http.StatusAccepted {
		t.Fatalf("create status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var job storage.Job
	if err := json.Unmarshal(rec.Body.Bytes(), &job); err != nil {
		t.Fatalf("bad create response: %v", err)
	}
	if job.Status != storage.JobStatusQueued {
		t.Errorf("created job status = %q", job.Status)
	}

	rec = doJSON(e, http.MethodGet, "/api/jobs/"+job.ID, "")
	if rec.Code != http.StatusOK {
		t.Errorf("get status = %d", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/api/jobs", "")
	if rec.Code != http.StatusOK {
		t.Errorf("list status = %d", rec.Code)
	}
	var list []storage.Job
	if err := json.Unmarshal(rec.Body.Bytes(), &list); err != nil {
		t.Fatalf("bad list response: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("list returned %d jobs, want 1", len(list))
	}

	rec = doJSON(e, http.MethodPost, "/api/jobs", `{"url":""}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty url status = %d, want 400", rec.Code)
	}

	rec = doJSON(e, http.MethodGet, "/api/jobs/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("missing job status = %d, want 404", rec.Code)
	}
}

func TestHealth(t *testing.T) {
	e := echo.New()
	e.GET("/health", Health)

	rec := doJSON(e, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status":"ok"`) {
		t.Errorf("body = %s", rec.Body.String())
	}
}
