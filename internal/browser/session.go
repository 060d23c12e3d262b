package browser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"
	"github.com/rs/zerolog/log"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/fail"
)

// standardPaths are probed after the configured override.
// Covers the usual Chrome/Chromium install locations.
var standardPaths = []string{
	"/usr/bin/google-chrome",
	"/usr/bin/google-chrome-stable",
	"/usr/bin/chromium",
	"/usr/bin/chromium-browser",
	"/snap/bin/chromium",
	"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
	"/Applications/Chromium.app/Contents/MacOS/Chromium",
	`C:\Program Files\Google\Chrome\Application\chrome.exe`,
	`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
}

// cacheGlobs cover browser caches used by container deployment platforms
// (puppeteer-style managed installs)
var cacheGlobs = []string{
	".cache/puppeteer/chrome/*/chrome-linux64/chrome",
	".cache/ms-playwright/chromium-*/chrome-linux/chrome",
	".cache/rod/browser/*/chrome",
}

// Manager owns browser executable discovery and scoped session lifecycles.
// Discovery runs once per process; sessions are single-use and never shared
// between attempts.
type Manager struct {
	configuredPath string

	once sync.Once
	bin  string      // "" means let rod manage its own download
	down atomic.Bool // set when the launch path itself is broken

	// sessionFn is a seam for tests; defaults to launching a real browser
	sessionFn func(ctx context.Context) (*Session, error)
}

// NewManager creates a manager with an optional explicit executable path
func NewManager(configuredPath string) *Manager {
	m := &Manager{configuredPath: configuredPath}
	m.sessionFn = m.acquire
	return m
}

// Resolve probes for a browser executable:
// configured path, standard install paths, rod's known-browser lookup,
// deployment cache directories, and finally rod's managed download.
// The result is cached for the life of the process.
func (m *Manager) Resolve() (string, error) {
	m.once.Do(func() {
		m.bin = m.probe()
	})
	if m.down.Load() {
		return "", fail.Newf(fail.BrowserUnavailable, "no usable browser executable")
	}
	return m.bin, nil
}

func (m *Manager) probe() string {
	if m.configuredPath != "" {
		if _, err := os.Stat(m.configuredPath); err == nil {
			log.Debug().Str("path", m.configuredPath).Msg("using configured browser")
			return m.configuredPath
		}
		log.Warn().Str("path", m.configuredPath).Msg("configured browser path not found, probing")
	}

	for _, p := range standardPaths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if path, ok := launcher.LookPath(); ok {
		return path
	}

	home, _ := os.UserHomeDir()
	for _, g := range cacheGlobs {
		matches, _ := filepath.Glob(filepath.Join(home, g))
		if len(matches) > 0 {
			return matches[0]
		}
	}

	// Last resort: rod downloads and manages its own browser
	log.Debug().Msg("no installed browser found, falling back to managed download")
	return ""
}

// markDown records a genuinely broken launch path so later requests skip
// browser work instead of retrying the launch
func (m *Manager) markDown() {
	m.down.Store(true)
}

// launchFailure classifies a launch or connect error. An attempt whose
// deadline expired mid-launch is a Timeout of that attempt only; anything
// else means the launch path itself is broken and the process-wide flag is
// set.
func (m *Manager) launchFailure(ctx context.Context, err error) error {
	if ctx.Err() != nil {
		return fail.New(fail.Timeout, fmt.Errorf("browser launch interrupted: %w", err))
	}
	m.markDown()
	return fail.New(fail.BrowserUnavailable, err)
}

// Session is a single-use headless browser owned by one extraction attempt
type Session struct {
	Page    *rod.Page
	cleanup func()
}

func (s *Session) close() {
	if s.cleanup != nil {
		s.cleanup()
	}
}

// WithPage runs fn against a fresh stealth page and guarantees browser
// teardown on every exit path. The ctx deadline bounds all page operations.
func (m *Manager) WithPage(ctx context.Context, fn func(page *rod.Page) error) error {
	open := m.sessionFn
	if open == nil {
		open = m.acquire
	}

	s, err := open(ctx)
	if err != nil {
		return err
	}
	defer s.close()

	return fn(s.Page.Context(ctx))
}

func (m *Manager) acquire(ctx context.Context) (*Session, error) {
	bin, err := m.Resolve()
	if err != nil {
		return nil, err
	}

	l := launcher.New().
		Headless(true).
		Set("no-sandbox").
		Set("disable-gpu").
		Set("disable-dev-shm-usage").
		Set("mute-audio")
	if bin != "" {
		l = l.Bin(bin)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, m.launchFailure(ctx, fmt.Errorf("browser launch failed: %w", err))
	}

	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, m.launchFailure(ctx, fmt.Errorf("browser connect failed: %w", err))
	}

	page, err := stealth.Page(b)
	if err != nil {
		_ = b.Close()
		l.Cleanup()
		return nil, classify(err)
	}

	return &Session{
		Page: page,
		cleanup: func() {
			// Close errors are expected when the process already died
			_ = page.Close()
			_ = b.Close()
			l.Cleanup()
		},
	}, nil
}

// Video pages keep persistent background connections and never reach
// network idle, so navigation waits for DOM load plus a fixed settle delay.
const settleDelay = 2 * time.Second

// Navigate loads a URL waiting for DOM readiness plus a short settle delay
func Navigate(page *rod.Page, url string) error {
	if err := page.Navigate(url); err != nil {
		return classify(err)
	}
	if err := page.WaitLoad(); err != nil {
		return classify(err)
	}
	time.Sleep(settleDelay)
	return nil
}

// crashSignatures identify a dead browser process inside rod errors
var crashSignatures = []string{
	"browser has crashed",
	"lost connection to browser",
	"use of closed network connection",
	"websocket: close",
	"cannot connect to the browser",
	"target closed",
}

// classify normalizes rod errors into the shared failure taxonomy.
// A crashed process is BrowserUnavailable and non-retryable within the
// same attempt.
func classify(err error) error {
	if err == nil {
		return nil
	}
	msg := strings.ToLower(err.Error())
	for _, sig := range crashSignatures {
		if strings.Contains(msg, sig) {
			return fail.New(fail.BrowserUnavailable, err)
		}
	}
	if strings.Contains(msg, "context deadline exceeded") || strings.Contains(msg, "timeout") {
		return fail.New(fail.Timeout, err)
	}
	return fail.New(fail.NetworkError, err)
}
