package cache

import (
	"context"
	"errors"
	"net"
	"time"
)

// ErrUnavailable is joined into connection errors of remote backends.
var ErrUnavailable = errors.New("cache backend unavailable")

// RetryableError marks a transient failure worth another attempt.
type RetryableError struct{ Err error }

// Retryable wraps err as a RetryableError. A nil err stays nil.
func Retryable(err error) error {
	if err == nil {
		return nil
	}
	return &RetryableError{Err: err}
}

func (e *RetryableError) Error() string { return e.Err.Error() }
func (e *RetryableError) Unwrap() error { return e.Err }

// IsRetryable reports whether err carries a RetryableError.
func IsRetryable(err error) bool {
	var re *RetryableError
	return errors.As(err, &re)
}

// retryPolicy bounds how often and how patiently a remote call is repeated.
// The delay doubles after every failed attempt.
type retryPolicy struct {
	attempts int
	delay    time.Duration
}

var defaultRetry = retryPolicy{attempts: 3, delay: 100 * time.Millisecond}

func (p retryPolicy) do(ctx context.Context, fn func() error) error {
	delay := p.delay
	var err error
	for attempt := 1; ; attempt++ {
		if err = fn(); err == nil || !IsRetryable(err) || attempt >= p.attempts {
			return err
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
			delay *= 2
		}
	}
}

// RetryWithBackoff calls fn up to three times, starting at a 100ms delay.
// Only errors wrapped with Retryable are retried.
func RetryWithBackoff(ctx context.Context, fn func() error) error {
	return defaultRetry.do(ctx, fn)
}

// transient marks network failures as retryable. isTransient adds
// backend-specific checks.
func transient(err error, isTransient ...func(error) bool) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return Retryable(err)
	}
	for _, is := range isTransient {
		if is(err) {
			return Retryable(err)
		}
	}
	return err
}
