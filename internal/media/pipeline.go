// Package media downloads a video's audio track and turns it into text.
// It is the most expensive strategy in the video chain and the one with
// the most temporary state, so every artifact it creates is removed on
// every exit path.
package media

import (
	"context"
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/asr"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/fail"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/transcribe"
)

// Downloader is one way of acquiring a video's audio track
type Downloader struct {
	Name string
	Run  func(ctx context.Context, url, outputPath string) error
}

// Pipeline is download → convert → transcribe, with unconditional cleanup
type Pipeline struct {
	TempDir     string
	Downloaders []Downloader           // tried in order
	Providers   []transcribe.Provider  // external services, priority order
	ModelDir    string                 // local ASR model fallback, "" disabled

	// convert is a seam for tests; defaults to ffmpeg conversion
	convert func(ctx context.Context, inputPath, outputPath string) error
}

// NewPipeline assembles a pipeline. At least one downloader and one
// transcription method (provider or local model) must be present for the
// pipeline to be usable.
func NewPipeline(tempDir string, downloaders []Downloader, providers []transcribe.Provider, modelDir string) *Pipeline {
	return &Pipeline{
		TempDir:     tempDir,
		Downloaders: downloaders,
		Providers:   providers,
		ModelDir:    modelDir,
		convert:     asr.ConvertToWav,
	}
}

// Usable reports whether the pipeline has both an acquisition and a
// transcription method
func (p *Pipeline) Usable() bool {
	return len(p.Downloaders) > 0 && (len(p.Providers) > 0 || p.ModelDir != "")
}

// Run downloads the URL's audio, converts it to 16kHz mono WAV and
// transcribes it. Temp file paths derive from a hash of the URL so
// concurrent requests never collide; both artifacts are deleted in the
// deferred cleanup whether the pipeline succeeds, fails, or times out.
func (p *Pipeline) Run(ctx context.Context, url string) (string, error) {
	if err := os.MkdirAll(p.TempDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create temp directory: %w", err)
	}

	hash := sha256.Sum256([]byte(url))
	base := filepath.Join(p.TempDir, fmt.Sprintf("media-%x", hash[:8]))
	audioPath := base + ".audio"
	wavPath := base + ".wav"

	defer func() {
		for _, path := range []string{audioPath, wavPath} {
			if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
				log.Warn().Str("path", path).Err(err).Msg("temp file cleanup failed")
			}
		}
	}()

	if err := p.download(ctx, url, audioPath); err != nil {
		return "", err
	}

	if err := p.convert(ctx, audioPath, wavPath); err != nil {
		return "", fail.New(fail.ParseFailure, fmt.Errorf("audio conversion failed: %w", err))
	}

	text, err := p.transcribe(ctx, wavPath)
	if err != nil {
		return "", err
	}
	return text, nil
}

// download tries each acquisition method in order
func (p *Pipeline) download(ctx context.Context, url, outputPath string) error {
	var lastErr error
	for _, d := range p.Downloaders {
		if err := d.Run(ctx, url, outputPath); err != nil {
			log.Debug().Str("downloader", d.Name).Str("url", url).Err(err).
				Msg("audio download failed")
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr == nil {
		lastErr = fail.Newf(fail.ParseFailure, "no downloader configured")
	}
	return lastErr
}

// transcribe prefers external providers and falls back to the local model
func (p *Pipeline) transcribe(ctx context.Context, wavPath string) (string, error) {
	if len(p.Providers) > 0 {
		text, err := transcribe.First(ctx, p.Providers, wavPath)
		if err == nil && text != "" {
			return text, nil
		}
		if p.ModelDir == "" {
			if err == nil {
				err = fail.Newf(fail.ParseFailure, "providers returned empty transcript")
			}
			return "", err
		}
		log.Warn().Err(err).Msg("external providers failed, using local model")
	}

	if p.ModelDir == "" {
		return "", fail.Newf(fail.ParseFailure, "no transcription method configured")
	}
	return p.transcribeLocal(wavPath)
}

func (p *Pipeline) transcribeLocal(wavPath string) (string, error) {
	cfg, err := asr.NewConfig(p.ModelDir)
	if err != nil {
		return "", fail.New(fail.ParseFailure, err)
	}

	recognizer, err := asr.NewRecognizer(cfg)
	if err != nil {
		return "", fail.New(fail.ParseFailure, err)
	}
	defer recognizer.Close()

	text, err := recognizer.TranscribeFile(wavPath)
	if err != nil {
		return "", fail.New(fail.ParseFailure, err)
	}
	return text, nil
}
