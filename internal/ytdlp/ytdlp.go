// Package ytdlp adapts the yt-dlp command-line media tool. It is the
// cheapest acquisition method for most platforms, so it sits first in the
// strategy chains.
package ytdlp

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/captions"
	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/fail"
)

// Runner invokes yt-dlp with shared options. CookiesPath may be empty.
type Runner struct {
	Path        string
	CookiesPath string
}

// Find locates the yt-dlp executable, resolved once at construction time
func Find() (string, bool) {
	path, err := exec.LookPath("yt-dlp")
	if err != nil {
		return "", false
	}
	return path, true
}

// Info is the subset of --dump-json output used for metadata strategies
type Info struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Uploader    string  `json:"uploader"`
	Duration    float64 `json:"duration"`
}

// DumpInfo fetches video metadata without downloading media
func (r *Runner) DumpInfo(ctx context.Context, url string) (*Info, error) {
	args := r.commonArgs()
	args = append(args, "--dump-json", "--skip-download", "--no-playlist", url)

	out, err := r.run(ctx, args)
	if err != nil {
		return nil, err
	}

	var info Info
	if err := json.Unmarshal(out, &info); err != nil {
		return nil, fail.New(fail.ParseFailure, fmt.Errorf("bad --dump-json output: %w", err))
	}
	return &info, nil
}

// DownloadSubtitles fetches manual or auto-generated subtitles into dir
// and returns their cleaned plain text. Preferred language first, any
// language as fallback.
func (r *Runner) DownloadSubtitles(ctx context.Context, url, lang, dir string) (string, error) {
	langs := lang + ",en,ru"
	args := r.commonArgs()
	args = append(args,
		"--write-subs", "--write-auto-subs",
		"--sub-langs", langs,
		"--sub-format", "vtt",
		"--skip-download", "--no-playlist",
		"-o", filepath.Join(dir, "subs.%(ext)s"),
		url,
	)

	if _, err := r.run(ctx, args); err != nil {
		return "", err
	}

	matches, _ := filepath.Glob(filepath.Join(dir, "subs.*.vtt"))
	if len(matches) == 0 {
		return "", fail.Newf(fail.ParseFailure, "no subtitle file produced")
	}

	// Prefer the requested language when several were written
	path := matches[0]
	for _, m := range matches {
		if strings.Contains(filepath.Base(m), "."+lang+".") {
			path = m
			break
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}

	text := captions.CleanVTT(string(data))
	if text == "" {
		return "", fail.Newf(fail.ParseFailure, "subtitle file has no usable text")
	}
	return text, nil
}

// DownloadAudio fetches the best audio track to outputPath
func (r *Runner) DownloadAudio(ctx context.Context, url, outputPath string) error {
	args := r.commonArgs()
	args = append(args,
		"-f", "bestaudio/best",
		"--no-playlist",
		"-o", outputPath,
		url,
	)
	_, err := r.run(ctx, args)
	return err
}

func (r *Runner) commonArgs() []string {
	args := []string{"--no-warnings", "--quiet"}
	if r.CookiesPath != "" {
		args = append(args, "--cookies", r.CookiesPath)
	}
	return args
}

func (r *Runner) run(ctx context.Context, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, r.Path, args...)
	var stderr strings.Builder
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, fail.New(fail.Timeout, ctx.Err())
		}
		return nil, classifyStderr(stderr.String(), err)
	}
	return out, nil
}

// classifyStderr maps yt-dlp failure text onto the shared taxonomy
func classifyStderr(stderr string, err error) error {
	s := strings.ToLower(stderr)
	switch {
	case strings.Contains(s, "sign in to confirm"),
		strings.Contains(s, "private video"),
		strings.Contains(s, "login required"),
		strings.Contains(s, "members-only"):
		return fail.New(fail.AuthRequired, fmt.Errorf("yt-dlp: %s", firstLine(stderr)))
	case strings.Contains(s, "429"),
		strings.Contains(s, "rate-limit"),
		strings.Contains(s, "too many requests"):
		return fail.New(fail.RateLimited, fmt.Errorf("yt-dlp: %s", firstLine(stderr)))
	case strings.Contains(s, "unsupported url"),
		strings.Contains(s, "unable to extract"):
		return fail.New(fail.ParseFailure, fmt.Errorf("yt-dlp: %s", firstLine(stderr)))
	default:
		return fail.New(fail.NetworkError, fmt.Errorf("yt-dlp failed: %w: %s", err, firstLine(stderr)))
	}
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return s
}
