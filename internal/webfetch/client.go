// Package webfetch renders pages through the managed html-fetch browser.
// It backs the primary article strategy; the session it opens lives only
// for one fetch and is closed on every exit path.
package webfetch

import (
	"context"
	"time"

	"github.com/naozine/nz-html-fetch/pkg/htmlfetch"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/fail"
)

// Options configures a scoped fetch
type Options struct {
	BrowserPath string        // explicit browser executable, "" for auto
	BlockAds    bool
	BlockImages bool
	WaitTime    time.Duration // how long to wait for WaitFor to appear
	Selector    string        // wait for this selector before extraction
}

// Result is the rendered page
type Result struct {
	URL      string        `json:"url"`
	Markdown string        `json:"markdown"`
	HTML     string        `json:"html"`
	Duration time.Duration `json:"duration"`
}

// Fetch renders a URL with a single-use stealth browser and returns both
// markdown and HTML. The browser is torn down before returning, regardless
// of outcome.
func Fetch(ctx context.Context, url string, opts *Options) (*Result, error) {
	if opts == nil {
		opts = &Options{BlockAds: true}
	}

	var fetcherOpts []htmlfetch.Option
	if opts.BrowserPath != "" {
		fetcherOpts = append(fetcherOpts, htmlfetch.WithBrowserPath(opts.BrowserPath))
	}
	fetcherOpts = append(fetcherOpts, htmlfetch.WithStealth(true))

	fetcher := htmlfetch.New(fetcherOpts...)
	if err := fetcher.Start(); err != nil {
		return nil, fail.New(fail.BrowserUnavailable, err)
	}
	defer fetcher.Close()

	fetchOpts := buildFetchOptions(opts)
	fetchOpts = append(fetchOpts, htmlfetch.WithMarkdown())

	result, err := fetcher.Fetch(ctx, url, fetchOpts...)
	if err != nil {
		return nil, fail.New(fail.NetworkError, err)
	}

	return &Result{
		URL:      result.FinalURL,
		Markdown: result.Markdown,
		HTML:     result.HTML,
		Duration: result.Duration,
	}, nil
}

func buildFetchOptions(opts *Options) []htmlfetch.FetchOption {
	var fetchOpts []htmlfetch.FetchOption

	if opts.BlockAds || opts.BlockImages {
		fetchOpts = append(fetchOpts, htmlfetch.WithBlocking(htmlfetch.BlockingOptions{
			Ads:   opts.BlockAds,
			Image: opts.BlockImages,
		}))
	}

	if opts.Selector != "" {
		timeout := 30 * time.Second
		if opts.WaitTime > 0 {
			timeout = opts.WaitTime
		}
		fetchOpts = append(fetchOpts, htmlfetch.WithSelector(opts.Selector, timeout))
	}

	return fetchOpts
}
