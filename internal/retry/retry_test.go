package retry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/nao1215/pokedex/internal/retry"
)

var fastPolicy = retry.Policy{
	MaxAttempts:      3,
	InitialBackoff:   time.Millisecond,
	RateLimitBackoff: 2 * time.Millisecond,
}

func always(a retry.Action) retry.Classify {
	return func(error) retry.Action { return a }
}

func TestDo(t *testing.T) {
	t.Parallel()

	errTransient := errors.New("transient")

	tests := []struct {
		name      string
		failures  int
		action    retry.Action
		wantCalls int
		wantErr   bool
		wantPerm  bool
	}{
		{name: "success on first attempt", failures: 0, action: retry.Retry, wantCalls: 1},
		{name: "success after retries", failures: 2, action: retry.Retry, wantCalls: 3},
		{name: "rate limited then success", failures: 1, action: retry.After, wantCalls: 2},
		{name: "exhausted", failures: 5, action: retry.Retry, wantCalls: 3, wantErr: true},
		{name: "permanent stops immediately", failures: 5, action: retry.Stop, wantCalls: 1, wantErr: true, wantPerm: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			calls := 0
			val, err := retry.Do(context.Background(), fastPolicy, always(tt.action), func(context.Context) (int, error) {
				calls++
				if calls <= tt.failures {
					return 0, errTransient
				}
				return 42, nil
			})

			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				if !errors.Is(err, errTransient) {
					t.Errorf("expected wrapped transient error, got %v", err)
				}
				var perm *retry.PermanentError
				if got := errors.As(err, &perm); got != tt.wantPerm {
					t.Errorf("PermanentError = %v, want %v", got, tt.wantPerm)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if val != 42 {
				t.Errorf("val = %d, want 42", val)
			}
		})
	}
}

func TestDo_OnRetryBackoff(t *testing.T) {
	t.Parallel()

	var waits []time.Duration
	p := fastPolicy
	p.MaxAttempts = 4
	p.OnRetry = func(_ int, _ error, backoff time.Duration) {
		waits = append(waits, backoff)
	}

	_, _ = retry.Do(context.Background(), p, always(retry.Retry), func(context.Context) (struct{}, error) {
		return struct{}{}, errors.New("boom")
	})

	want := []time.Duration{time.Millisecond, 2 * time.Millisecond, 4 * time.Millisecond}
	if len(waits) != len(want) {
		t.Fatalf("got %d retries, want %d", len(waits), len(want))
	}
	for i := range want {
		if waits[i] != want[i] {
			t.Errorf("wait[%d] = %v, want %v", i, waits[i], want[i])
		}
	}
}

func TestDo_RateLimitBackoff(t *testing.T) {
	t.Parallel()

	var got time.Duration
	p := fastPolicy
	p.MaxAttempts = 2
	p.OnRetry = func(_ int, _ error, backoff time.Duration) { got = backoff }

	_, _ = retry.Do(context.Background(), p, always(retry.After), func(context.Context) (int, error) {
		return 0, errors.New("429")
	})
	if got != p.RateLimitBackoff {
		t.Errorf("backoff = %v, want %v", got, p.RateLimitBackoff)
	}
}

func TestDo_ContextCancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	p := retry.Policy{MaxAttempts: 5, InitialBackoff: time.Hour}
	p.OnRetry = func(int, error, time.Duration) { cancel() }

	_, err := retry.Do(ctx, p, always(retry.Retry), func(context.Context) (int, error) {
		return 0, errors.New("transient")
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDo_InvalidPolicy(t *testing.T) {
	t.Parallel()

	_, err := retry.Do(context.Background(), retry.Policy{}, always(retry.Retry), func(context.Context) (int, error) {
		return 1, nil
	})
	if !errors.Is(err, retry.ErrInvalidPolicy) {
		t.Fatalf("expected ErrInvalidPolicy, got %v", err)
	}
}

func TestAction_String(t *testing.T) {
	t.Parallel()

	if retry.Stop.String() != "stop" || retry.Retry.String() != "retry" || retry.After.String() != "after" {
		t.Error("unexpected action names")
	}
}
