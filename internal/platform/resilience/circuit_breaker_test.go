package resilience

import (
	"errors"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestCircuitBreaker_BasicTransitions(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Date(2026, 2, 11, 12, 0, 0, 0, time.UTC))
	b := NewCircuitBreaker(CircuitBreakerConfig{
		FailureThreshold: 2,
		OpenTimeout:      5 * time.Second,
		HalfOpenMaxReq:   1,
	}, WithBreakerClock(clock))

	if err := b.Allow(); err != nil {
		t.Fatalf("expected allow in closed state: %v", err)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after first failure, got %s", state)
	}

	b.RecordFailure()
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after threshold failures, got %s", state)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}

	clock.Advance(6 * time.Second)
	if err := b.Allow(); err != nil {
		t.Fatalf("expected half-open request to pass, got %v", err)
	}
	if state := b.State(); state != CircuitStateHalfOpen {
		t.Fatalf("expected half-open state, got %s", state)
	}
	if err := b.Allow(); !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected only one half-open request, got %v", err)
	}

	b.RecordSuccess()
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after successful half-open request, got %s", state)
	}
}

func TestCircuitBreaker_ExecuteUsesPredicate(t *testing.T) {
	errRejected := errors.New("validation rejected")
	errDown := errors.New("connection refused")

	b := NewCircuitBreaker(CircuitBreakerConfig{FailureThreshold: 1, OpenTimeout: time.Minute},
		WithBreakerClock(clockwork.NewFakeClock()),
		WithFailurePredicate(func(err error) bool { return errors.Is(err, errDown) }),
	)

	if err := b.Execute(func() error { return errRejected }); !errors.Is(err, errRejected) {
		t.Fatalf("expected rejected error passed through, got %v", err)
	}
	if state := b.State(); state != CircuitStateClosed {
		t.Fatalf("expected closed after ignored failure, got %s", state)
	}

	if err := b.Execute(func() error { return errDown }); !errors.Is(err, errDown) {
		t.Fatalf("expected down error passed through, got %v", err)
	}
	if state := b.State(); state != CircuitStateOpen {
		t.Fatalf("expected open after counted failure, got %s", state)
	}

	called := false
	err := b.Execute(func() error {
		called = true
		return nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected circuit open error, got %v", err)
	}
	if called {
		t.Fatalf("expected fn not to run while open")
	}
}

func TestCircuitBreaker_NilExecute(t *testing.T) {
	var b *CircuitBreaker
	if err := b.Execute(func() error { return nil }); err != nil {
		t.Fatalf("expected nil breaker to run fn, got %v", err)
	}
}

func TestNormalizeCircuitBreakerConfig(t *testing.T) {
	cfg := NormalizeCircuitBreakerConfig(CircuitBreakerConfig{Enabled: true})
	if !cfg.Enabled {
		t.Fatalf("expected enabled to be kept")
	}
	if cfg.FailureThreshold != 3 || cfg.OpenTimeout != 10*time.Second || cfg.HalfOpenMaxReq != 1 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}
