// Package fail defines the closed failure taxonomy shared by every
// extraction adapter. Heterogeneous dependency errors (HTTP statuses,
// process exit codes, browser crash signatures) are normalized into these
// kinds at each adapter boundary, so the strategy executor only ever
// reasons about a fixed set of failure classes.
package fail

import (
	"context"
	"errors"
	"fmt"
)

// Kind classifies why a strategy failed
type Kind string

const (
	Timeout            Kind = "timeout"
	BrowserUnavailable Kind = "browser_unavailable"
	AuthRequired       Kind = "auth_required"
	RateLimited        Kind = "rate_limited"
	ParseFailure       Kind = "parse_failure"
	NetworkError       Kind = "network_error"
)

// Error carries a failure kind alongside the underlying cause
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New wraps err with a failure kind
func New(kind Kind, err error) error {
	return &Error{Kind: kind, Err: err}
}

// Newf creates a classified failure from a format string
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// KindOf extracts the failure kind from an error.
// Deadline and cancellation errors map to Timeout; anything unclassified
// is treated as a network-level failure.
func KindOf(err error) Kind {
	var fe *Error
	if errors.As(err, &fe) {
		return fe.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return Timeout
	}
	return NetworkError
}

// Is reports whether err carries the given kind
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// FromStatus classifies an HTTP response status.
// 2xx statuses return "" (no failure).
func FromStatus(code int) Kind {
	switch {
	case code >= 200 && code < 300:
		return ""
	case code == 401 || code == 403 || code == 407:
		return AuthRequired
	case code == 402 || code == 429:
		return RateLimited
	case code == 408 || code == 504:
		return Timeout
	case code >= 500:
		return NetworkError
	default:
		return ParseFailure
	}
}
