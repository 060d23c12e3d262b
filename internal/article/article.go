// Package article turns page HTML into readable plain text.
package article

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"
	readability "github.com/go-shiori/go-readability"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/fail"
)

var whitespaceRe = regexp.MustCompile(`\s+`)

// junkSelectors are removed before the manual content-region fallback
var junkSelectors = []string{
	"script", "style", "noscript", "iframe", "svg",
	"header", "footer", "nav", "aside",
	".advertisement", ".ad", ".sidebar", ".comments",
	"[role=navigation]", "[role=banner]", "[role=contentinfo]",
}

// FromHTML extracts the main article text from raw page HTML.
// Readability runs first and its output is rendered as markdown; when it
// fails, a manual goquery pass over common content-region selectors takes
// over.
func FromHTML(html, pageURL string) (string, error) {
	parsed, _ := url.Parse(pageURL)

	art, err := readability.FromReader(strings.NewReader(html), parsed)
	if err == nil {
		if text := renderArticle(art); text != "" {
			return text, nil
		}
	}

	text, err := fromContentRegion(html)
	if err != nil {
		return "", err
	}
	return text, nil
}

func renderArticle(art readability.Article) string {
	md, err := htmltomarkdown.ConvertString(art.Content)
	if err != nil || strings.TrimSpace(md) == "" {
		md = art.TextContent
	}
	text := strings.TrimSpace(md)

	if art.Title != "" && !strings.Contains(text, art.Title) {
		text = art.Title + "\n\n" + text
	}
	return text
}

// fromContentRegion is the manual fallback: strip junk elements and take
// the first plausible content container
func fromContentRegion(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fail.New(fail.ParseFailure, fmt.Errorf("html parse failed: %w", err))
	}

	doc.Find(strings.Join(junkSelectors, ", ")).Each(func(_ int, s *goquery.Selection) {
		s.Remove()
	})

	region := doc.Find("article, main, .content, .post-content, .article-content, #content").First()
	if region.Length() == 0 {
		region = doc.Find("body")
	}

	text := strings.TrimSpace(whitespaceRe.ReplaceAllString(region.Text(), " "))
	if text == "" {
		return "", fail.Newf(fail.ParseFailure, "no article text found")
	}
	return text, nil
}
