// Package transcribe holds the external speech-to-text providers tried
// before the local model.
package transcribe

import (
	"context"

	"github.com/rs/zerolog/log"
)

// Provider is one speech-to-text backend
type Provider interface {
	Name() string
	Transcribe(ctx context.Context, audioPath string) (string, error)
}

// First runs providers in their configured priority order and returns the
// first non-empty transcript. All providers failing returns the last error.
func First(ctx context.Context, providers []Provider, audioPath string) (string, error) {
	var lastErr error
	for _, p := range providers {
		text, err := p.Transcribe(ctx, audioPath)
		if err != nil {
			log.Warn().Str("provider", p.Name()).Err(err).Msg("transcription provider failed")
			lastErr = err
			continue
		}
		if text != "" {
			return text, nil
		}
	}
	return "", lastErr
}
