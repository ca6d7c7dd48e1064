package provider

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// AuthError means the backend rejected or lacks credentials. Never retried.
type AuthError struct {
	Provider string
	Message  string
}

func (e *AuthError) Error() string {
	return fmt.Sprintf("%s auth: %s", e.Provider, e.Message)
}

// UpstreamError is a non-2xx or malformed response from a backend.
type UpstreamError struct {
	Provider   string
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s upstream %d: %s", e.Provider, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s upstream: %s", e.Provider, e.Message)
}

// TimeoutError means the backend exceeded its bounded wait.
type TimeoutError struct {
	Provider string
	Err      error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("%s timeout: %v", e.Provider, e.Err)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// IsRetryable reports whether a caller-side policy may retry or fall back.
// Auth failures are final.
func IsRetryable(err error) bool {
	var up *UpstreamError
	var to *TimeoutError
	return errors.As(err, &up) || errors.As(err, &to)
}

// IsRateLimited recognizes rate-limit-class upstream failures.
func IsRateLimited(err error) bool {
	var up *UpstreamError
	if errors.As(err, &up) && up.StatusCode == http.StatusTooManyRequests {
		return true
	}
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "quota") ||
		strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

// classifyTransportError converts an http.Client failure into the taxonomy.
func classifyTransportError(providerName string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return &TimeoutError{Provider: providerName, Err: err}
	}
	var uerr *url.Error
	if errors.As(err, &uerr) && uerr.Timeout() {
		return &TimeoutError{Provider: providerName, Err: err}
	}
	return &UpstreamError{Provider: providerName, Message: err.Error()}
}
