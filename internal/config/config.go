package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all environment-driven settings for the extraction service
type Config struct {
	// Server
	Port         string
	DataDir      string
	DatabasePath string

	// Browser
	BrowserPath string // explicit browser executable override

	// Extraction behavior
	DisableTranscription bool   // skip audio download/transcription, go straight to metadata
	CaptionLang          string // preferred caption language code

	// yt-dlp credentials (either a file path or inline base64 content)
	CookiesFile string
	CookiesB64  string

	// External services
	YouTubeAPIKey   string
	ScrapingAPIURL  string
	ScrapingAPIKeys []string // tried in rotation on auth/rate-limit failures
	OpenAIAPIKey    string
	OpenAIBaseURL   string
	DeepgramAPIKey  string
	DeepgramAPIURL  string

	// Local speech model
	ASRModelDir string
}

// Load reads configuration from the environment.
// A .env file is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Port:                 Str("PORT", "8080"),
		DataDir:              Str("DATA_DIR", "data"),
		DatabasePath:         Str("DATABASE_PATH", "data/curator.db"),
		BrowserPath:          Str("BROWSER_PATH", ""),
		DisableTranscription: Bool("DISABLE_TRANSCRIPTION", false),
		CaptionLang:          Str("CAPTION_LANG", "ru"),
		CookiesFile:          Str("YTDLP_COOKIES_FILE", ""),
		CookiesB64:           Str("YTDLP_COOKIES_B64", ""),
		YouTubeAPIKey:        Str("YOUTUBE_API_KEY", ""),
		ScrapingAPIURL:       Str("SCRAPING_API_URL", "https://api.scraperapi.com"),
		ScrapingAPIKeys:      List("SCRAPING_API_KEYS", ""),
		OpenAIAPIKey:         Str("OPENAI_API_KEY", ""),
		OpenAIBaseURL:        Str("OPENAI_BASE_URL", ""),
		DeepgramAPIKey:       Str("DEEPGRAM_API_KEY", ""),
		DeepgramAPIURL:       Str("DEEPGRAM_API_URL", "https://api.deepgram.com/v1/listen"),
		ASRModelDir:          Str("ASR_MODEL_DIR", ""),
	}
}

// Str returns the environment variable or a default
func Str(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Int returns the environment variable parsed as int or a default
func Int(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// Bool returns the environment variable parsed as bool or a default
func Bool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

// Duration returns the environment variable parsed as duration or a default
func Duration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

// List splits a comma-separated environment variable into trimmed parts.
// Empty parts are dropped.
func List(key, def string) []string {
	v := os.Getenv(key)
	if v == "" {
		v = def
	}
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
