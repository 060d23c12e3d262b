package youtube

import (
	"context"
	"time"

	"github.com/kkdai/youtube/v2"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/captions"
)

// Client wraps the youtube library for metadata, caption-track discovery
// and audio stream download
type Client struct {
	client youtube.Client
}

// NewClient creates a new YouTube client
func NewClient() *Client {
	return &Client{
		client: youtube.Client{},
	}
}

// VideoInfo is the video metadata needed by the extraction strategies
type VideoInfo struct {
	ID          string
	Title       string
	Author      string
	Duration    time.Duration
	Description string
	Captions    []captions.Track
}

// GetVideo fetches video metadata and available caption tracks
func (c *Client) GetVideo(ctx context.Context, url string) (*VideoInfo, error) {
	video, err := c.client.GetVideoContext(ctx, url)
	if err != nil {
		return nil, err
	}

	tracks := make([]captions.Track, len(video.CaptionTracks))
	for i, track := range video.CaptionTracks {
		tracks[i] = captions.Track{
			LanguageCode: track.LanguageCode,
			Name:         track.Name.SimpleText,
			BaseURL:      track.BaseURL,
		}
	}

	return &VideoInfo{
		ID:          video.ID,
		Title:       video.Title,
		Author:      video.Author,
		Duration:    video.Duration,
		Description: video.Description,
		Captions:    tracks,
	}, nil
}

// FindCaption returns the caption track for the preferred language.
// Falls back to the first available track when the language is missing,
// nil when the video has no captions at all.
func (v *VideoInfo) FindCaption(lang string) *captions.Track {
	if len(v.Captions) == 0 {
		return nil
	}
	for i := range v.Captions {
		if v.Captions[i].LanguageCode == lang {
			return &v.Captions[i]
		}
	}
	return &v.Captions[0]
}

// HasCaptions reports whether any caption track is available
func (v *VideoInfo) HasCaptions() bool {
	return len(v.Captions) > 0
}
