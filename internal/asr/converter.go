package asr

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// FFmpegPath locates the ffmpeg executable
func FFmpegPath() (string, bool) {
	path, err := exec.LookPath("ffmpeg")
	if err != nil {
		return "", false
	}
	return path, true
}

// ConvertToWav converts any audio file to 16kHz mono WAV suitable for
// speech recognition
func ConvertToWav(ctx context.Context, inputPath, outputPath string) error {
	ffmpeg, ok := FFmpegPath()
	if !ok {
		return fmt.Errorf("ffmpeg not found: please install ffmpeg to convert audio files")
	}

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("input file not found: %s", inputPath)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	// -ar 16000: sample rate 16kHz
	// -ac 1: mono channel
	// -y: overwrite output file
	cmd := exec.CommandContext(ctx, ffmpeg,
		"-i", inputPath,
		"-ar", "16000",
		"-ac", "1",
		"-f", "wav",
		"-y",
		outputPath,
	)

	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg conversion failed: %w\nOutput: %s", err, string(output))
	}

	return nil
}
