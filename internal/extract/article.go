package extract

import (
	"context"
	"strings"
	"time"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/article"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/fail"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/platform"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/webfetch"
)

// articleChain extracts the main content region of a regular web page.
// Browser-rendered strategies come first; the rendering service and a
// plain fetch cover deployments without a local browser.
func (e *Extractor) articleChain(url string) []Strategy {
	chain := []Strategy{
		{
			Name:         "browser-article",
			Timeout:      60 * time.Second,
			NeedsBrowser: true,
			Run: func(ctx context.Context) (string, error) {
				result, err := webfetch.Fetch(ctx, url, &webfetch.Options{
					BrowserPath: e.cfg.BrowserPath,
					BlockAds:    true,
					BlockImages: true,
				})
				if err != nil {
					return "", err
				}
				if md := strings.TrimSpace(result.Markdown); md != "" {
					return md, nil
				}
				return article.FromHTML(result.HTML, url)
			},
		},
	}

	chain = append(chain, Strategy{
		Name:         "browser-dom-article",
		Timeout:      60 * time.Second,
		NeedsBrowser: true,
		Run: func(ctx context.Context) (string, error) {
			html, err := e.browser.ArticleHTML(ctx, url)
			if err != nil {
				return "", err
			}
			return article.FromHTML(html, url)
		},
	})

	if e.scrape.Configured() {
		chain = append(chain, Strategy{
			Name:    "scraping-api-article",
			Timeout: 60 * time.Second,
			Run: func(ctx context.Context) (string, error) {
				html, err := e.scrape.Render(ctx, url)
				if err != nil {
					return "", err
				}
				return article.FromHTML(html, url)
			},
		})
	}

	chain = append(chain, Strategy{
		Name:    "http-article",
		Timeout: 15 * time.Second,
		Run: func(ctx context.Context) (string, error) {
			html, err := article.FetchHTML(ctx, e.httpClient, url)
			if err != nil {
				return "", err
			}
			return article.FromHTML(html, url)
		},
	})

	return chain
}

// articleMetadataChain mirrors the video metadata fallbacks for pages
// whose main content could not be extracted
func (e *Extractor) articleMetadataChain(url string) []Strategy {
	return []Strategy{
		{
			Name:         "browser-metadata",
			Timeout:      60 * time.Second,
			NeedsBrowser: true,
			Run: func(ctx context.Context) (string, error) {
				meta, err := e.browser.FetchMetadata(ctx, url, platform.KindNone)
				if err != nil {
					return "", err
				}
				return Metadata{Title: meta.Title, Description: meta.Description}.Text(), nil
			},
		},
		e.openGraphStrategy(url),
	}
}

// openGraphStrategy is the shared last-resort metadata strategy: one plain
// HTTP fetch of the page's Open Graph tags
func (e *Extractor) openGraphStrategy(url string) Strategy {
	return Strategy{
		Name:    "opengraph",
		Timeout: 10 * time.Second,
		Run: func(ctx context.Context) (string, error) {
			og, err := article.FetchOpenGraph(ctx, e.httpClient, url)
			if err != nil {
				return "", err
			}
			text := Metadata{Title: og.Title, Description: og.Description}.Text()
			if text == "" {
				return "", fail.Newf(fail.ParseFailure, "empty open graph metadata")
			}
			return text, nil
		},
	}
}
