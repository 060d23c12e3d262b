package article

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/fail"
)

const ogTimeout = 10 * time.Second

// OpenGraph is the title/description pair scraped from meta tags
type OpenGraph struct {
	Title       string
	Description string
}

// FetchOpenGraph is the last-resort metadata strategy: one plain HTTP GET
// and a scrape of Open Graph and standard meta tags
func FetchOpenGraph(ctx context.Context, client *http.Client, pageURL string) (OpenGraph, error) {
	if client == nil {
		client = http.DefaultClient
	}

	ctx, cancel := context.WithTimeout(ctx, ogTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return OpenGraph{}, err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36")

	resp, err := client.Do(req)
	if err != nil {
		return OpenGraph{}, fail.New(fail.NetworkError, err)
	}
	defer resp.Body.Close()

	if kind := fail.FromStatus(resp.StatusCode); kind != "" {
		return OpenGraph{}, fail.Newf(kind, "status %d fetching %s", resp.StatusCode, pageURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return OpenGraph{}, fail.New(fail.ParseFailure, err)
	}

	og := OpenGraph{
		Title:       metaAttr(doc, `meta[property="og:title"]`),
		Description: metaAttr(doc, `meta[property="og:description"]`),
	}
	if og.Title == "" {
		og.Title = strings.TrimSpace(doc.Find("title").First().Text())
	}
	if og.Description == "" {
		og.Description = metaAttr(doc, `meta[name="description"]`)
	}

	if og.Title == "" && og.Description == "" {
		return OpenGraph{}, fail.Newf(fail.ParseFailure, "no open graph tags found")
	}
	return og, nil
}

func metaAttr(doc *goquery.Document, selector string) string {
	content, _ := doc.Find(selector).First().Attr("content")
	return strings.TrimSpace(content)
}
