package providers

import (
	"errors"
	"fmt"
	"time"
)

// ErrProviderUnavailable is returned when a provider cannot serve calls, for example while
// its circuit breaker is open.
var ErrProviderUnavailable = errors.New("provider unavailable")

// RateLimitError captures rate limit responses from upstream providers.
type RateLimitError struct {
	Provider   string
	StatusCode int
	RetryAfter time.Duration
	Remaining  string
	Message    string
}

func (e *RateLimitError) Error() string {
	msg := e.Message
	if msg == "" {
		msg = "provider rate limited"
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s (status=%d)", msg, e.StatusCode)
	}
	return msg
}

// AsRateLimitError attempts to unwrap an error into a RateLimitError.
func AsRateLimitError(err error) (*RateLimitError, bool) {
	var rlErr *RateLimitError
	if errors.As(err, &rlErr) {
		return rlErr, true
	}
	return nil, false
}

// UpstreamError reports a transport failure or a non-2xx answer from an upstream provider.
// StatusCode is zero for transport failures.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
	Err        error
}

func (e *UpstreamError) Error() string {
	msg := e.Provider + ": "
	if e.StatusCode > 0 {
		msg += fmt.Sprintf("unexpected status %d", e.StatusCode)
	} else {
		msg += "request failed"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *UpstreamError) Unwrap() error { return e.Err }

// IsUpstreamFailure reports whether err means the upstream could not serve the call, as
// opposed to a decode failure or a cancelled caller.
func IsUpstreamFailure(err error) bool {
	if err == nil {
		return false
	}
	var upErr *UpstreamError
	var rlErr *RateLimitError
	return errors.As(err, &upErr) || errors.As(err, &rlErr) || errors.Is(err, ErrProviderUnavailable)
}
