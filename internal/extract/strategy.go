package extract

import (
	"context"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog/log"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/fail"
)

// minContentLen is the adequacy threshold in runes: a strategy result
// shorter than this is treated as a failure and the chain advances.
const minContentLen = 50

// Strategy is one concrete method of acquiring content, bounded by its own
// timeout. Run returns the extracted text; errors never leave the chain
// runner.
type Strategy struct {
	Name         string
	Timeout      time.Duration
	NeedsBrowser bool
	Run          func(ctx context.Context) (string, error)
}

// runChain executes strategies in order and returns the first result whose
// length meets the threshold. Failures and timeouts are recorded and the
// chain advances; once a browser launch is known to be impossible, later
// browser strategies are skipped instead of retrying the launch.
func runChain(ctx context.Context, url string, chain []Strategy) (string, bool) {
	browserDown := false

	for _, s := range chain {
		if s.NeedsBrowser && browserDown {
			log.Debug().Str("strategy", s.Name).Str("url", url).
				Str("outcome", "skipped").Msg("browser unavailable, skipping")
			continue
		}

		started := time.Now()
		text, err := runOne(ctx, s)
		elapsed := time.Since(started)

		switch {
		case err != nil:
			kind := fail.KindOf(err)
			if kind == fail.BrowserUnavailable {
				browserDown = true
			}
			log.Warn().Str("strategy", s.Name).Str("url", url).
				Str("outcome", "failed").Str("kind", string(kind)).
				Dur("elapsed", elapsed).Err(err).Msg("strategy failed")

		case utf8.RuneCountInString(strings.TrimSpace(text)) < minContentLen:
			log.Debug().Str("strategy", s.Name).Str("url", url).
				Str("outcome", "failed").Int("len", utf8.RuneCountInString(text)).
				Dur("elapsed", elapsed).Msg("result below threshold")

		default:
			log.Info().Str("strategy", s.Name).Str("url", url).
				Str("outcome", "success").Int("len", utf8.RuneCountInString(text)).
				Dur("elapsed", elapsed).Msg("strategy succeeded")
			return strings.TrimSpace(text), true
		}
	}

	return "", false
}

// runOne executes a single strategy under its own timeout
func runOne(ctx context.Context, s Strategy) (string, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	text, err := s.Run(ctx)
	if err == nil && ctx.Err() != nil {
		// Run returned after the deadline without surfacing it
		return "", fail.New(fail.Timeout, ctx.Err())
	}
	return text, err
}
