package browser

import "github.com/mashassnvts/ai-content-curator-back-sub000/internal/platform"

// Selector tables are data, not code: when a site changes its markup only
// these tables need updating.

// transcriptSelectors lists candidate controls that open a transcript
// panel, tried in order
var transcriptSelectors = map[platform.Kind][]string{
	platform.KindYouTube: {
		`button[aria-label="Show transcript"]`,
		`button[aria-label="Показать расшифровку видео"]`,
		`ytd-video-description-transcript-section-renderer button`,
		`#primary-button ytd-button-renderer button`,
	},
}

// transcriptPhrases are matched case-insensitively against clickable
// element text when no selector candidate hits
var transcriptPhrases = []string{
	"show transcript",
	"открыть расшифровку",
	"показать расшифровку",
	"расшифровка видео",
	"transcript",
}

// overflowSelectors open the "more actions" menu that sometimes hides the
// transcript item
var overflowSelectors = map[platform.Kind][]string{
	platform.KindYouTube: {
		`#actions ytd-menu-renderer button[aria-label="More actions"]`,
		`#actions ytd-menu-renderer yt-icon-button`,
	},
}

// panelSelectors locate an already-rendered transcript panel
var panelSelectors = map[platform.Kind][]string{
	platform.KindYouTube: {
		`ytd-transcript-segment-list-renderer`,
		`ytd-transcript-renderer`,
		`#segments-container`,
	},
}

// segmentSelectors extract the text rows inside an open panel
var segmentSelectors = map[platform.Kind][]string{
	platform.KindYouTube: {
		`ytd-transcript-segment-renderer .segment-text`,
		`ytd-transcript-segment-renderer yt-formatted-string`,
	},
}

// SupportsTranscript reports whether a selector table exists for reading
// the platform's transcript panel
func SupportsTranscript(kind platform.Kind) bool {
	return len(panelSelectors[kind]) > 0
}

// metaSelectors are per-platform overrides for title/description scraping,
// consulted before the generic og:/meta tags
var metaSelectors = map[platform.Kind]struct {
	Title       []string
	Description []string
}{
	platform.KindYouTube: {
		Title:       []string{`h1.ytd-watch-metadata yt-formatted-string`, `h1.title`},
		Description: []string{`#description-inline-expander`, `#description yt-formatted-string`},
	},
	platform.KindVK: {
		Title:       []string{`.VideoPageInfoRow__title`, `.mv_title`},
		Description: []string{`.VideoPageInfoRow__description`, `.mv_description`},
	},
	platform.KindRutube: {
		Title:       []string{`h1[class*="video-page-title"]`, `h1`},
		Description: []string{`div[class*="video-page-description"]`},
	},
	platform.KindDzen: {
		Title:       []string{`h1[class*="video-title"]`, `h1`},
		Description: []string{`div[class*="video-description"]`},
	},
}
