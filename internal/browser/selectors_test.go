package browser

import (
	"testing"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/platform"
)

func TestSupportsTranscript(t *testing.T) {
	if !SupportsTranscript(platform.KindYouTube) {
		t.Error("YouTube transcript selectors missing")
	}
	if SupportsTranscript(platform.KindTikTok) {
		t.Error("TikTok incorrectly reported as supporting transcript panels")
	}
	if SupportsTranscript(platform.KindNone) {
		t.Error("article kind reported as supporting transcript panels")
	}
}

func TestSelectorTablesConsistent(t *testing.T) {
	// every platform with a panel table also needs segment selectors,
	// otherwise an open panel could never be read
	for kind := range panelSelectors {
		if len(segmentSelectors[kind]) == 0 {
			t.Errorf("%s has panel selectors but no segment selectors", kind)
		}
	}
}
