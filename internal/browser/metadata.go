package browser

import (
	"context"
	"strings"

	"github.com/go-rod/rod"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/fail"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/platform"
)

// PageMeta is title/description-level information scraped from a rendered page
type PageMeta struct {
	Title       string
	Description string
}

// FetchMetadata renders a page and scrapes title and description, trying
// platform-specific selectors before the generic og:/meta tags
func (m *Manager) FetchMetadata(ctx context.Context, url string, kind platform.Kind) (PageMeta, error) {
	var meta PageMeta

	err := m.WithPage(ctx, func(page *rod.Page) error {
		if err := Navigate(page, url); err != nil {
			return err
		}

		sels := metaSelectors[kind]
		meta.Title = firstText(page, sels.Title)
		meta.Description = firstText(page, sels.Description)

		if meta.Title == "" {
			meta.Title = metaContent(page, `meta[property="og:title"]`)
		}
		if meta.Title == "" {
			if t, err := page.Eval(`() => document.title`); err == nil {
				meta.Title = strings.TrimSpace(t.Value.Str())
			}
		}
		if meta.Description == "" {
			meta.Description = metaContent(page, `meta[property="og:description"]`)
		}
		if meta.Description == "" {
			meta.Description = metaContent(page, `meta[name="description"]`)
		}

		if meta.Title == "" && meta.Description == "" {
			return fail.Newf(fail.ParseFailure, "no metadata found on page")
		}
		return nil
	})
	if err != nil {
		return PageMeta{}, err
	}
	return meta, nil
}

// ArticleHTML renders a page and returns its full HTML for readability
// extraction
func (m *Manager) ArticleHTML(ctx context.Context, url string) (string, error) {
	var html string
	err := m.WithPage(ctx, func(page *rod.Page) error {
		if err := Navigate(page, url); err != nil {
			return err
		}
		var err error
		html, err = page.HTML()
		if err != nil {
			return classify(err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return html, nil
}

func firstText(page *rod.Page, selectors []string) string {
	for _, sel := range selectors {
		has, el, err := page.Has(sel)
		if err != nil || !has {
			continue
		}
		t, err := el.Text()
		if err != nil {
			continue
		}
		if t = strings.TrimSpace(t); t != "" {
			return t
		}
	}
	return ""
}

func metaContent(page *rod.Page, selector string) string {
	has, el, err := page.Has(selector)
	if err != nil || !has {
		return ""
	}
	attr, err := el.Attribute("content")
	if err != nil || attr == nil {
		return ""
	}
	return strings.TrimSpace(*attr)
}
