package captions

import (
	"regexp"
	"strings"
)

// WebVTT noise stripped from yt-dlp subtitle downloads
var (
	vttHeaderRe   = regexp.MustCompile(`^WEBVTT\b.*$`)
	vttTimingRe   = regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{3}\s*-->\s*\d{2}:\d{2}:\d{2}\.\d{3}`)
	vttTagRe      = regexp.MustCompile(`<[^>]+>`)
	vttCueIDRe    = regexp.MustCompile(`^\d+$`)
	vttMetadataRe = regexp.MustCompile(`^(Kind|Language|NOTE|STYLE|REGION)\b`)
)

// CleanVTT turns raw WebVTT subtitle content into readable plain text.
// Headers, timing cues, inline tags, and cue identifiers are dropped, and
// consecutive repeated lines (common in auto-generated rolling captions)
// are collapsed.
func CleanVTT(data string) string {
	var out []string
	var last string

	for _, line := range strings.Split(data, "\n") {
		line = strings.TrimSpace(line)
		if line == "" ||
			vttHeaderRe.MatchString(line) ||
			vttTimingRe.MatchString(line) ||
			vttCueIDRe.MatchString(line) ||
			vttMetadataRe.MatchString(line) {
			continue
		}

		line = vttTagRe.ReplaceAllString(line, "")
		line = entityReplacer.Replace(line)
		line = strings.TrimSpace(line)
		if line == "" || line == last {
			continue
		}

		out = append(out, line)
		last = line
	}

	return strings.Join(out, " ")
}
