package platform

import (
	"regexp"
)

// Kind identifies the video platform a URL belongs to.
// KindNone means the URL is treated as a regular article.
type Kind string

const (
	KindNone      Kind = ""
	KindYouTube   Kind = "youtube"
	KindVK        Kind = "vk"
	KindTikTok    Kind = "tiktok"
	KindRutube    Kind = "rutube"
	KindDzen      Kind = "dzen"
	KindYandex    Kind = "yandex"
	KindInstagram Kind = "instagram"
	KindFacebook  Kind = "facebook"
	KindTwitter   Kind = "twitter"
)

// IsVideo reports whether the URL was classified as a video platform
func (k Kind) IsVideo() bool {
	return k != KindNone
}

// String returns the platform name, "article" for KindNone
func (k Kind) String() string {
	if k == KindNone {
		return "article"
	}
	return string(k)
}

// matcher pairs a URL-shape pattern with the platform it identifies.
// Order matters: first match wins.
type matcher struct {
	pattern *regexp.Regexp
	kind    Kind
}

var matchers = []matcher{
	{regexp.MustCompile(`(?i)(?:youtube\.com/(?:watch|shorts|live|embed)|youtu\.be/)`), KindYouTube},
	{regexp.MustCompile(`(?i)(?:vk\.com|vkvideo\.ru)/(?:video|clip)`), KindVK},
	{regexp.MustCompile(`(?i)tiktok\.com/`), KindTikTok},
	{regexp.MustCompile(`(?i)rutube\.ru/(?:video|shorts)/`), KindRutube},
	{regexp.MustCompile(`(?i)(?:dzen|zen\.yandex)\.ru/(?:video|shorts)`), KindDzen},
	{regexp.MustCompile(`(?i)yandex\.ru/video`), KindYandex},
	{regexp.MustCompile(`(?i)instagram\.com/(?:reel|reels|tv|p)/`), KindInstagram},
	{regexp.MustCompile(`(?i)(?:facebook\.com/(?:watch|reel|.+/videos)|fb\.watch/)`), KindFacebook},
	{regexp.MustCompile(`(?i)(?:twitter|x)\.com/\w+/status/`), KindTwitter},
}

// Classify maps a URL to its platform kind.
// Pure pattern matching, no I/O. An unmatched URL is a valid outcome
// (KindNone, article path), not an error.
func Classify(rawURL string) Kind {
	for _, m := range matchers {
		if m.pattern.MatchString(rawURL) {
			return m.kind
		}
	}
	return KindNone
}
