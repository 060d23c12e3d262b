// Package extract is the extraction orchestrator: it classifies a URL,
// runs the matching strategy chain, and always produces a usable Content
// value for the downstream relevance scorer.
package extract

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/browser"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/config"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/media"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/platform"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/scrapeapi"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/transcribe"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/videoapi"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/youtube"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/ytdlp"
)

// Extractor runs the strategy chains. Optional capabilities (CLI tool,
// API clients, transcription pipeline) are resolved once here, so the
// per-request path never probes for executables or keys.
type Extractor struct {
	cfg        *config.Config
	httpClient *http.Client

	browser  *browser.Manager
	yt       *youtube.Client
	ytdlp    *ytdlp.Runner     // nil when yt-dlp is not installed
	videoAPI *videoapi.Client  // nil without an API key
	scrape   *scrapeapi.Client // nil without keys
	pipeline *media.Pipeline   // nil when transcription is disabled or unusable
}

// New builds an extractor from configuration. The only failure mode is a
// configuration-level one (invalid credential material); per-request
// acquisition failures never surface as errors.
func New(cfg *config.Config) (*Extractor, error) {
	if cfg == nil {
		return nil, errors.New("extract: nil config")
	}

	e := &Extractor{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: 20 * time.Second,
		},
		browser: browser.NewManager(cfg.BrowserPath),
		yt:      youtube.NewClient(),
	}

	// Credential material is materialized once, here, not lazily inside a
	// request
	cookiesPath, err := cfg.ResolveCookies()
	if err != nil {
		return nil, err
	}

	if path, ok := ytdlp.Find(); ok {
		e.ytdlp = &ytdlp.Runner{Path: path, CookiesPath: cookiesPath}
	} else {
		log.Warn().Msg("yt-dlp not installed, CLI strategies disabled")
	}

	if cfg.YouTubeAPIKey != "" {
		e.videoAPI = &videoapi.Client{APIKey: cfg.YouTubeAPIKey, HTTPClient: e.httpClient}
	}

	e.scrape = scrapeapi.New(cfg.ScrapingAPIURL, cfg.ScrapingAPIKeys)

	if !cfg.DisableTranscription {
		e.pipeline = e.buildPipeline(cfg)
	}

	log.Info().
		Bool("ytdlp", e.ytdlp != nil).
		Bool("video_api", e.videoAPI != nil).
		Bool("scrape_api", e.scrape.Configured()).
		Bool("transcription", e.pipeline != nil).
		Msg("extractor ready")

	return e, nil
}

func (e *Extractor) buildPipeline(cfg *config.Config) *media.Pipeline {
	var downloaders []media.Downloader
	downloaders = append(downloaders, media.Downloader{
		Name: "youtube-library",
		Run:  e.yt.DownloadAudio,
	})
	if e.ytdlp != nil {
		downloaders = append(downloaders, media.Downloader{
			Name: "ytdlp",
			Run:  e.ytdlp.DownloadAudio,
		})
	}

	var providers []transcribe.Provider
	if cfg.OpenAIAPIKey != "" {
		providers = append(providers, transcribe.NewOpenAI(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL))
	}
	if cfg.DeepgramAPIKey != "" {
		providers = append(providers, &transcribe.Deepgram{
			APIKey: cfg.DeepgramAPIKey,
			APIURL: cfg.DeepgramAPIURL,
		})
	}

	p := media.NewPipeline(cfg.DataDir+"/tmp", downloaders, providers, cfg.ASRModelDir)
	if !p.Usable() {
		log.Debug().Msg("no transcription method configured, audio pipeline disabled")
		return nil
	}
	return p
}

// Extract classifies the URL and runs the matching strategy chains.
// It never fails: when every strategy is exhausted the result is an
// explicit metadata-level placeholder.
func (e *Extractor) Extract(ctx context.Context, url string) Content {
	kind := platform.Classify(url)
	log.Info().Str("url", url).Str("platform", kind.String()).Msg("extracting")

	if kind.IsVideo() {
		return e.extractVideo(ctx, url, e.transcriptChain(url, kind), e.videoMetadataChain(url, kind))
	}
	return e.extractArticle(ctx, url, e.articleChain(url), e.articleMetadataChain(url))
}

func (e *Extractor) extractVideo(ctx context.Context, url string, transcript, metadata []Strategy) Content {
	if text, ok := runChain(ctx, url, transcript); ok {
		return Content{Text: text, Source: SourceTranscript}
	}

	log.Info().Str("url", url).Msg("no transcript obtained, falling back to metadata")
	if text, ok := runChain(ctx, url, metadata); ok {
		return Content{Text: text, Source: SourceMetadata}
	}

	return unavailable()
}

func (e *Extractor) extractArticle(ctx context.Context, url string, main, metadata []Strategy) Content {
	if text, ok := runChain(ctx, url, main); ok {
		return Content{Text: text, Source: SourceArticle}
	}

	log.Info().Str("url", url).Msg("article extraction failed, falling back to metadata")
	if text, ok := runChain(ctx, url, metadata); ok {
		return Content{Text: text, Source: SourceMetadata}
	}

	return unavailable()
}
