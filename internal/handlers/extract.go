package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/extract"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/platform"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/storage"
)

// Extractor runs the strategy chains for a URL
type Extractor interface {
	Extract(ctx context.Context, url string) extract.Content
}

// ExtractHandler serves synchronous extraction requests
type ExtractHandler struct {
	extractor Extractor
	repo      *storage.ExtractionRepository
}

// NewExtractHandler creates a new ExtractHandler
func NewExtractHandler(extractor Extractor, repo *storage.ExtractionRepository) *ExtractHandler {
	return &ExtractHandler{extractor: extractor, repo: repo}
}

type extractRequest struct {
	URL string `json:"url"`
}

type extractResponse struct {
	ID       string `json:"id,omitempty"`
	URL      string `json:"url"`
	Platform string `json:"platform"`
	Content  string `json:"content"`
	Source   string `json:"source"`
}

// Extract runs extraction for a URL and stores the result
func (h *ExtractHandler) Extract(c echo.Context) error {
	ctx := c.Request().Context()

	var req extractRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.URL == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "url is required"})
	}

	content := h.extractor.Extract(ctx, req.URL)
	kind := platform.Classify(req.URL)

	resp := extractResponse{
		URL:      req.URL,
		Platform: kind.String(),
		Content:  content.Text,
		Source:   string(content.Source),
	}

	if h.repo != nil {
		stored := &storage.Extraction{
			URL:        req.URL,
			Platform:   kind.String(),
			SourceType: string(content.Source),
			Content:    content.Text,
		}
		if err := h.repo.Create(ctx, stored); err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		resp.ID = stored.ID
	}

	return c.JSON(http.StatusOK, resp)
}

// Get returns a stored extraction
func (h *ExtractHandler) Get(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	extraction, err := h.repo.GetByID(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
	if extraction == nil {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "extraction not found"})
	}

	return c.JSON(http.StatusOK, extraction)
}

// List returns recent extractions
func (h *ExtractHandler) List(c echo.Context) error {
	ctx := c.Request().Context()

	limit := 20
	if l := c.QueryParam("limit"); l != "" {
		if parsed, err := strconv.Atoi(l); err == nil {
			limit = parsed
		}
	}

	extractions, err := h.repo.ListRecent(ctx, limit)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}

	return c.JSON(http.StatusOK, extractions)
}
