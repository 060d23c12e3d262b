package browser

import (
	"context"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/rs/zerolog/log"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/fail"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/platform"
)

// FetchTranscript navigates to a video page and tries to read its
// transcript panel. Sub-strategies in order: known selector candidates for
// the "show transcript" control, a text scan of clickable elements, the
// overflow-menu path, and finally checking whether a panel is already open.
// All of them failing fails the caller's strategy, not the session.
func (m *Manager) FetchTranscript(ctx context.Context, url string, kind platform.Kind) (string, error) {
	var text string

	err := m.WithPage(ctx, func(page *rod.Page) error {
		if err := Navigate(page, url); err != nil {
			return err
		}

		opened := openBySelectors(page, transcriptSelectors[kind]) ||
			openByPhrase(page) ||
			openViaOverflow(page, kind)

		if !opened {
			log.Debug().Str("url", url).Msg("no transcript control found, checking for open panel")
		} else {
			// Give the panel time to populate
			time.Sleep(settleDelay)
		}

		var err error
		text, err = readPanel(page, kind)
		return err
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

// openBySelectors clicks the first matching candidate control
func openBySelectors(page *rod.Page, selectors []string) bool {
	for _, sel := range selectors {
		has, el, err := page.Has(sel)
		if err != nil || !has {
			continue
		}
		if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
			continue
		}
		return true
	}
	return false
}

// openByPhrase scans clickable elements for known transcript phrases
func openByPhrase(page *rod.Page) bool {
	els, err := page.Elements(`button, [role="button"], tp-yt-paper-item, yt-formatted-string`)
	if err != nil {
		return false
	}
	for _, el := range els {
		t, err := el.Text()
		if err != nil {
			continue
		}
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || len(t) > 60 {
			continue
		}
		for _, phrase := range transcriptPhrases {
			if strings.Contains(t, phrase) {
				if err := el.Click(proto.InputMouseButtonLeft, 1); err == nil {
					return true
				}
			}
		}
	}
	return false
}

// openViaOverflow opens the overflow menu first, then looks for the
// transcript item inside it
func openViaOverflow(page *rod.Page, kind platform.Kind) bool {
	if !openBySelectors(page, overflowSelectors[kind]) {
		return false
	}
	time.Sleep(500 * time.Millisecond)
	return openByPhrase(page)
}

// readPanel collects segment text from an open transcript panel
func readPanel(page *rod.Page, kind platform.Kind) (string, error) {
	panelFound := false
	for _, sel := range panelSelectors[kind] {
		has, _, err := page.Has(sel)
		if err == nil && has {
			panelFound = true
			break
		}
	}
	if !panelFound {
		return "", fail.Newf(fail.ParseFailure, "transcript panel not present")
	}

	for _, sel := range segmentSelectors[kind] {
		els, err := page.Elements(sel)
		if err != nil || len(els) == 0 {
			continue
		}
		var parts []string
		for _, el := range els {
			t, err := el.Text()
			if err != nil {
				continue
			}
			t = strings.TrimSpace(t)
			if t != "" {
				parts = append(parts, t)
			}
		}
		if len(parts) > 0 {
			return strings.Join(parts, " "), nil
		}
	}

	return "", fail.Newf(fail.ParseFailure, "transcript panel has no segments")
}
