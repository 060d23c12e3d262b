package captions

import (
	"regexp"
	"strings"
)

// YouTube serves timed text in two markup flavors: the srv format with
// <text start=".." dur="..">…</text> entries and the newer timedtext
// format with <p t=".." d=".."><s>…</s></p> entries.
var (
	textTagRe  = regexp.MustCompile(`(?s)<text[^>]*>(.*?)</text>`)
	paraTagRe  = regexp.MustCompile(`(?s)<p[^>]*>(.*?)</p>`)
	innerTagRe = regexp.MustCompile(`<[^>]+>`)
)

var entityReplacer = strings.NewReplacer(
	"&amp;", "&",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
)

// ParseTimedText extracts plain text from timed-text caption markup.
// Segments from the primary <text> pattern are collected first; if that
// yields nothing the more permissive <p> pattern is tried. Empty segments
// are discarded and the rest joined with single spaces. Returns "" when
// no usable text is found.
func ParseTimedText(data string) string {
	segments := collectSegments(textTagRe, data)
	if len(segments) == 0 {
		segments = collectSegments(paraTagRe, data)
	}
	return strings.Join(segments, " ")
}

func collectSegments(re *regexp.Regexp, data string) []string {
	matches := re.FindAllStringSubmatch(data, -1)
	segments := make([]string, 0, len(matches))
	for _, m := range matches {
		text := innerTagRe.ReplaceAllString(m[1], "")
		text = entityReplacer.Replace(text)
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		segments = append(segments, text)
	}
	return segments
}
