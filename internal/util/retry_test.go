// ABOUTME: Tests for retry utilities including exponential backoff
// ABOUTME: Validates backoff bounds, jitter, and the context-aware retry loop
package util

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCalculateBackoff_Bounds(t *testing.T) {
	tests := []struct {
		name    string
		base    time.Duration
		attempt int
		min     time.Duration
		max     time.Duration
	}{
		{"attempt zero", time.Second, 0, 0, 0},
		{"negative attempt", time.Second, -5, 0, 0},
		{"zero base", 0, 3, 0, 0},
		{"first retry", 100 * time.Millisecond, 1, 150 * time.Millisecond, 250 * time.Millisecond},
		{"third retry", 100 * time.Millisecond, 3, 600 * time.Millisecond, time.Second},
		{"capped", time.Second, 10, MaxBackoff * 3 / 4, MaxBackoff * 5 / 4},
		{"huge attempt", time.Millisecond, 1000, MaxBackoff * 3 / 4, MaxBackoff * 5 / 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 20; i++ {
				got := CalculateBackoff(tt.base, tt.attempt)
				if got < tt.min || got > tt.max {
					t.Fatalf("CalculateBackoff(%v, %d) = %v, want within [%v, %v]", tt.base, tt.attempt, got, tt.min, tt.max)
				}
			}
		})
	}
}

func TestCalculateBackoff_Jitter(t *testing.T) {
	first := CalculateBackoff(time.Second, 2)
	for i := 0; i < 100; i++ {
		if CalculateBackoff(time.Second, 2) != first {
			return
		}
	}
	t.Error("jitter should produce varying results, but all samples were identical")
}

func TestRetry(t *testing.T) {
	errBoom := errors.New("boom")

	tests := []struct {
		name        string
		maxRetries  int
		failUntil   int
		wantCalls   int
		wantSuccess bool
	}{
		{"succeeds first try", 3, 0, 1, true},
		{"succeeds after two failures", 3, 2, 3, true},
		{"exhausts retries", 2, 10, 3, false},
		{"negative retries means one attempt", -1, 10, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := Retry(context.Background(), tt.maxRetries, time.Microsecond, func(attempt int) error {
				if attempt != calls {
					t.Errorf("attempt = %d, want %d", attempt, calls)
				}
				calls++
				if calls <= tt.failUntil {
					return errBoom
				}
				return nil
			})

			if calls != tt.wantCalls {
				t.Errorf("calls = %d, want %d", calls, tt.wantCalls)
			}
			if tt.wantSuccess && err != nil {
				t.Errorf("Retry() error = %v, want nil", err)
			}
			if !tt.wantSuccess && !errors.Is(err, errBoom) {
				t.Errorf("Retry() error = %v, want wrapped boom", err)
			}
		})
	}
}

func TestRetry_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	calls := 0
	err := Retry(ctx, 5, time.Hour, func(int) error {
		calls++
		cancel()
		return errors.New("fail")
	})

	if calls != 1 {
		t.Errorf("calls = %d, want 1", calls)
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Retry() error = %v, want context.Canceled", err)
	}
}
