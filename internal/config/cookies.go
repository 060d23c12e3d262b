package config

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

var (
	cookiesOnce sync.Once
	cookiesPath string
	cookiesErr  error
)

// ResolveCookies returns the path to a Netscape-format cookies file for yt-dlp,
// or "" when no cookie material is configured.
//
// Inline base64 content is written to a temp file exactly once per process.
// Resolution happens at extractor construction, not inside the request path,
// so concurrent first calls never race on initialization.
func (c *Config) ResolveCookies() (string, error) {
	cookiesOnce.Do(func() {
		cookiesPath, cookiesErr = c.materializeCookies()
	})
	return cookiesPath, cookiesErr
}

func (c *Config) materializeCookies() (string, error) {
	if c.CookiesFile != "" {
		if _, err := os.Stat(c.CookiesFile); err != nil {
			return "", fmt.Errorf("cookies file not found: %s", c.CookiesFile)
		}
		return c.CookiesFile, nil
	}

	if c.CookiesB64 == "" {
		return "", nil
	}

	data, err := base64.StdEncoding.DecodeString(c.CookiesB64)
	if err != nil {
		return "", fmt.Errorf("failed to decode inline cookies: %w", err)
	}

	path := filepath.Join(os.TempDir(), fmt.Sprintf("curator-cookies-%d.txt", os.Getpid()))
	if err := os.WriteFile(path, data, 0600); err != nil {
		return "", fmt.Errorf("failed to write cookies file: %w", err)
	}

	return path, nil
}
