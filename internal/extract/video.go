package extract

import (
	"context"
	"os"
	"time"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/browser"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/captions"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/fail"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/platform"
)

// transcriptChain lists the full-transcript strategies for a video URL,
// cheapest first: CLI tool, caption library, browser automation, and the
// audio pipeline last.
func (e *Extractor) transcriptChain(url string, kind platform.Kind) []Strategy {
	var chain []Strategy

	if e.ytdlp != nil {
		chain = append(chain, Strategy{
			Name:    "ytdlp-subtitles",
			Timeout: 60 * time.Second,
			Run: func(ctx context.Context) (string, error) {
				dir, err := os.MkdirTemp("", "subs-*")
				if err != nil {
					return "", err
				}
				defer os.RemoveAll(dir)
				return e.ytdlp.DownloadSubtitles(ctx, url, e.cfg.CaptionLang, dir)
			},
		})
	}

	if kind == platform.KindYouTube {
		chain = append(chain, Strategy{
			Name:    "caption-library",
			Timeout: 20 * time.Second,
			Run: func(ctx context.Context) (string, error) {
				video, err := e.yt.GetVideo(ctx, url)
				if err != nil {
					return "", fail.New(fail.NetworkError, err)
				}
				if !video.HasCaptions() {
					return "", fail.Newf(fail.ParseFailure, "video has no caption tracks")
				}
				track := video.FindCaption(e.cfg.CaptionLang)
				if track == nil {
					return "", fail.Newf(fail.ParseFailure, "no caption track for %q", e.cfg.CaptionLang)
				}
				return captions.Download(ctx, e.httpClient, *track)
			},
		})
	}

	if browser.SupportsTranscript(kind) {
		chain = append(chain, Strategy{
			Name:         "browser-transcript",
			Timeout:      90 * time.Second,
			NeedsBrowser: true,
			Run: func(ctx context.Context) (string, error) {
				return e.browser.FetchTranscript(ctx, url, kind)
			},
		})
	}

	if e.pipeline != nil {
		chain = append(chain, Strategy{
			Name:    "audio-transcription",
			Timeout: 90 * time.Second,
			Run: func(ctx context.Context) (string, error) {
				return e.pipeline.Run(ctx, url)
			},
		})
	}

	return chain
}

// videoMetadataChain lists the degraded title/description strategies used
// when no transcript could be obtained
func (e *Extractor) videoMetadataChain(url string, kind platform.Kind) []Strategy {
	var chain []Strategy

	if e.ytdlp != nil {
		chain = append(chain, Strategy{
			Name:    "ytdlp-metadata",
			Timeout: 30 * time.Second,
			Run: func(ctx context.Context) (string, error) {
				info, err := e.ytdlp.DumpInfo(ctx, url)
				if err != nil {
					return "", err
				}
				return Metadata{
					Title:       info.Title,
					Description: info.Description,
					Author:      info.Uploader,
				}.Text(), nil
			},
		})
	}

	if kind == platform.KindYouTube && e.videoAPI != nil {
		chain = append(chain, Strategy{
			Name:    "platform-api",
			Timeout: 10 * time.Second,
			Run: func(ctx context.Context) (string, error) {
				snippet, err := e.videoAPI.Fetch(ctx, url)
				if err != nil {
					return "", err
				}
				return Metadata{
					Title:       snippet.Title,
					Description: snippet.Description,
					Author:      snippet.ChannelTitle,
				}.Text(), nil
			},
		})
	}

	chain = append(chain, Strategy{
		Name:         "browser-metadata",
		Timeout:      60 * time.Second,
		NeedsBrowser: true,
		Run: func(ctx context.Context) (string, error) {
			meta, err := e.browser.FetchMetadata(ctx, url, kind)
			if err != nil {
				return "", err
			}
			return Metadata{Title: meta.Title, Description: meta.Description}.Text(), nil
		},
	})

	if kind == platform.KindYouTube {
		chain = append(chain, Strategy{
			Name:    "video-info-library",
			Timeout: 15 * time.Second,
			Run: func(ctx context.Context) (string, error) {
				video, err := e.yt.GetVideo(ctx, url)
				if err != nil {
					return "", fail.New(fail.NetworkError, err)
				}
				return Metadata{
					Title:       video.Title,
					Description: video.Description,
					Author:      video.Author,
				}.Text(), nil
			},
		})
	}

	chain = append(chain, e.openGraphStrategy(url))
	return chain
}
