package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestCircuitBreaker_OpensAndRecovers(t *testing.T) {
	b := NewCircuitBreaker(BreakerConfig{FailureThreshold: 2, OpenTimeout: 5 * time.Second})

	now := time.Date(2024, 12, 8, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	ctx := context.Background()
	storeDown := errors.New("dial tcp: connection refused")
	failing := func(context.Context) error { return storeDown }
	healthy := func(context.Context) error { return nil }

	if err := b.Execute(ctx, failing); !errors.Is(err, storeDown) {
		t.Fatalf("expected store error, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	_ = b.Execute(ctx, failing)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}

	called := false
	err := b.Execute(ctx, func(context.Context) error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrCircuitOpen) || called {
		t.Fatalf("expected short circuit, got err=%v called=%v", err, called)
	}

	now = now.Add(6 * time.Second)
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}
	if err := b.Execute(ctx, healthy); err != nil {
		t.Fatalf("expected trial call to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful trial call, got %s", state)
	}
}

func TestCircuitBreaker_FailedProbeReopens(t *testing.T) {
	b := NewCircuitBreaker(BreakerConfig{FailureThreshold: 1, OpenTimeout: time.Second})
	now := time.Date(2024, 12, 8, 12, 0, 0, 0, time.UTC)
	b.now = func() time.Time { return now }

	fail := func(context.Context) error { return errors.New("down") }
	_ = b.Execute(context.Background(), fail)

	now = now.Add(2 * time.Second)
	_ = b.Execute(context.Background(), fail)
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected reopen after failed trial call, got %s", state)
	}
}

func TestCircuitBreaker_DisabledPassesThrough(t *testing.T) {
	b := NewCircuitBreaker(BreakerConfig{})
	if b != nil {
		t.Fatalf("expected nil breaker when disabled")
	}

	for i := 0; i < 5; i++ {
		if err := b.Execute(context.Background(), func(context.Context) error { return errors.New("down") }); errors.Is(err, ErrCircuitOpen) {
			t.Fatalf("disabled breaker must never open")
		}
	}
	if b.State() != CircuitStateClosed {
		t.Fatalf("expected closed state for disabled breaker")
	}
}
