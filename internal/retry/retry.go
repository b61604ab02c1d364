// Package retry runs an operation repeatedly with exponential backoff.
//
// Callers decide per error whether to stop, retry, or back off longer
// (rate limiting). PokeAPI answers 429 when a client is too eager, and
// 5xx during deploys; both deserve another try, a 404 does not.
package retry

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Action tells Do what to do after a failed attempt.
type Action int

const (
	// Stop aborts immediately; the error is permanent.
	Stop Action = iota
	// Retry waits for the current backoff and tries again.
	Retry
	// After waits for the rate limit backoff and tries again.
	After
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case Stop:
		return "stop"
	case Retry:
		return "retry"
	case After:
		return "after"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ErrInvalidPolicy is returned when MaxAttempts is less than one.
var ErrInvalidPolicy = errors.New("retry policy needs at least one attempt")

// Policy configures Do.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int
	// InitialBackoff is the wait after the first transient failure.
	// It doubles after each retry.
	InitialBackoff time.Duration
	// RateLimitBackoff is used instead of the current backoff when the
	// classifier returns After. Zero falls back to the current backoff.
	RateLimitBackoff time.Duration
	// OnRetry, if set, is called before each wait.
	OnRetry func(attempt int, err error, backoff time.Duration)
}

// Classify maps an error to an Action.
type Classify func(err error) Action

// Operation is a single attempt that yields a value.
type Operation[T any] func(ctx context.Context) (T, error)

// Do calls op until it succeeds, the classifier returns Stop, the attempts
// are exhausted, or ctx is cancelled.
//
// Errors classified as Stop are wrapped in *PermanentError. When attempts
// run out, the last error is wrapped so errors.Is still reaches it.
func Do[T any](ctx context.Context, p Policy, classify Classify, op Operation[T]) (T, error) {
	var zero T
	if p.MaxAttempts < 1 {
		return zero, ErrInvalidPolicy
	}

	backoff := p.InitialBackoff
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		val, err := op(ctx)
		if err == nil {
			return val, nil
		}
		lastErr = err

		action := classify(err)
		if action == Stop {
			return zero, &PermanentError{Err: err}
		}
		if attempt == p.MaxAttempts {
			break
		}

		wait := backoff
		if action == After && p.RateLimitBackoff > 0 {
			wait = p.RateLimitBackoff
		}
		if p.OnRetry != nil {
			p.OnRetry(attempt, err, wait)
		}

		timer := time.NewTimer(wait)
		select {
		case <-timer.C:
			backoff *= 2
		case <-ctx.Done():
			timer.Stop()
			return zero, fmt.Errorf("retry cancelled: %w", ctx.Err())
		}
	}

	return zero, fmt.Errorf("failed after %d attempts: %w", p.MaxAttempts, lastErr)
}

// PermanentError wraps an error that must not be retried.
type PermanentError struct {
	Err error
}

func (e *PermanentError) Error() string { return e.Err.Error() }
func (e *PermanentError) Unwrap() error { return e.Err }
