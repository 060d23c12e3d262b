package browser

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-rod/rod"

	"github.com/mashassnvts/ai-content-curator-back-sub000/internal/fail"
)

func TestLaunchFailureExpiredDeadlineIsTimeout(t *testing.T) {
	m := NewManager("")

	ctx, cancel := context.WithTimeout(context.Background(), time.Nanosecond)
	defer cancel()
	<-ctx.Done()

	err := m.launchFailure(ctx, errors.New("connect interrupted"))
	if !fail.Is(err, fail.Timeout) {
		t.Errorf("deadline-expired launch classified as %v, want timeout", err)
	}
	if m.down.Load() {
		t.Error("a timed-out launch marked the browser down for the whole process")
	}

	// the next request still gets to try a launch
	if _, err := m.Resolve(); err != nil {
		t.Errorf("Resolve() error = %v after a timed-out attempt", err)
	}
}

func TestLaunchFailureBrokenPathMarksDown(t *testing.T) {
	m := NewManager("")

	err := m.launchFailure(context.Background(), errors.New("exec format error"))
	if !fail.Is(err, fail.BrowserUnavailable) {
		t.Errorf("broken launch classified as %v, want browser_unavailable", err)
	}
	if !m.down.Load() {
		t.Error("broken launch did not mark the browser down")
	}
	if _, err := m.Resolve(); !fail.Is(err, fail.BrowserUnavailable) {
		t.Errorf("Resolve() after broken launch = %v, want browser_unavailable", err)
	}
}

func TestMarkDownConcurrentWithResolve(t *testing.T) {
	m := NewManager("")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.markDown()
		}()
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Resolve()
		}()
	}
	wg.Wait()

	if _, err := m.Resolve(); !fail.Is(err, fail.BrowserUnavailable) {
		t.Errorf("Resolve() = %v after markDown", err)
	}
}

func fakeSession(closed *int) func(ctx context.Context) (*Session, error) {
	return func(ctx context.Context) (*Session, error) {
		return &Session{
			Page:    &rod.Page{},
			cleanup: func() { *closed++ },
		}, nil
	}
}

func TestWithPageClosesSessionOnSuccess(t *testing.T) {
	m := NewManager("")
	closed := 0
	m.sessionFn = fakeSession(&closed)

	err := m.WithPage(context.Background(), func(page *rod.Page) error {
		return nil
	})
	if err != nil {
		t.Fatalf("WithPage() error = %v", err)
	}
	if closed != 1 {
		t.Errorf("session closed %d times, want 1", closed)
	}
}

func TestWithPageClosesSessionOnError(t *testing.T) {
	m := NewManager("")
	closed := 0
	m.sessionFn = fakeSession(&closed)

	wantErr := errors.New("page work failed")
	err := m.WithPage(context.Background(), func(page *rod.Page) error {
		return wantErr
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("WithPage() error = %v, want the callback's error", err)
	}
	if closed != 1 {
		t.Errorf("session closed %d times after a failed callback, want 1", closed)
	}
}

func TestWithPageNoSessionNoCleanup(t *testing.T) {
	m := NewManager("")
	closed := 0
	m.sessionFn = func(ctx context.Context) (*Session, error) {
		return nil, fail.Newf(fail.BrowserUnavailable, "no browser")
	}

	err := m.WithPage(context.Background(), func(page *rod.Page) error {
		t.Error("callback ran without a session")
		return nil
	})
	if !fail.Is(err, fail.BrowserUnavailable) {
		t.Errorf("WithPage() error = %v", err)
	}
	if closed != 0 {
		t.Errorf("cleanup ran %d times with no session", closed)
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want fail.Kind
	}{
		{"crash signature", errors.New("rod: browser has crashed"), fail.BrowserUnavailable},
		{"closed connection", errors.New("use of closed network connection"), fail.BrowserUnavailable},
		{"deadline", errors.New("context deadline exceeded"), fail.Timeout},
		{"anything else", errors.New("net::ERR_NAME_NOT_RESOLVED"), fail.NetworkError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fail.KindOf(classify(tt.err)); got != tt.want {
				t.Errorf("classify(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
