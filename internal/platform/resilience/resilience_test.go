package resilience

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRetryPolicy_DelaySequence(t *testing.T) {
	t.Parallel()

	p := DefaultRetryPolicy()
	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second, 8 * time.Second}
	for attempt, expected := range want {
		if got := p.Delay(attempt, 0); got != expected {
			t.Fatalf("attempt %d: expected %s, got=%s", attempt, expected, got)
		}
	}
	if p.Attempts() != 4 {
		t.Fatalf("expected 4 attempts, got=%d", p.Attempts())
	}
}

func TestRetryPolicy_DelayIsCapped(t *testing.T) {
	t.Parallel()

	p := DefaultRetryPolicy()
	if got := p.Delay(10, 0); got != 60*time.Second {
		t.Fatalf("expected cap of 60s, got=%s", got)
	}
	if got := p.Delay(62, 0); got != 60*time.Second {
		t.Fatalf("expected cap of 60s for huge attempt, got=%s", got)
	}
}

func TestRetryPolicy_RetryAfterWinsWhenLarger(t *testing.T) {
	t.Parallel()

	p := DefaultRetryPolicy()
	if got := p.Delay(0, 5*time.Second); got != 5*time.Second {
		t.Fatalf("expected retry-after of 5s, got=%s", got)
	}
	if got := p.Delay(3, 2*time.Second); got != 8*time.Second {
		t.Fatalf("expected exponential delay of 8s, got=%s", got)
	}
}

func TestNormalizeRetryPolicy(t *testing.T) {
	t.Parallel()

	p := NormalizeRetryPolicy(RetryPolicy{MaxRetries: -1})
	if p.MaxRetries != 0 || p.BaseDelay != time.Second || p.MaxDelay != 60*time.Second {
		t.Fatalf("unexpected normalized policy: %+v", p)
	}
}

func TestSleep_StopsOnCancel(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := Sleep(ctx, time.Hour); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestBreaker_OpensAfterConsecutiveFailures(t *testing.T) {
	t.Parallel()

	transient := errors.New("transient")
	b := NewBreaker("golfgenius", BreakerConfig{
		Enabled:          true,
		FailureThreshold: 2,
		OpenTimeout:      time.Minute,
		HalfOpenMaxReq:   1,
	}, func(err error) bool { return errors.Is(err, transient) }, nil)

	for i := 0; i < 2; i++ {
		if _, err := b.Execute(func() (any, error) { return nil, transient }); !errors.Is(err, transient) {
			t.Fatalf("expected transient error, got %v", err)
		}
	}

	calls := 0
	_, err := b.Execute(func() (any, error) {
		calls++
		return "ok", nil
	})
	if !errors.Is(err, ErrCircuitOpen) {
		t.Fatalf("expected ErrCircuitOpen, got %v", err)
	}
	if calls != 0 {
		t.Fatalf("expected call to be rejected, got=%d calls", calls)
	}
	if b.State() != "open" {
		t.Fatalf("expected open state, got %s", b.State())
	}
}

func TestBreaker_IgnoresNonTransientErrors(t *testing.T) {
	t.Parallel()

	permanent := errors.New("bad request")
	b := NewBreaker("golfgenius", BreakerConfig{Enabled: true, FailureThreshold: 1}, func(err error) bool { return false }, nil)

	for i := 0; i < 3; i++ {
		if _, err := b.Execute(func() (any, error) { return nil, permanent }); !errors.Is(err, permanent) {
			t.Fatalf("expected permanent error passthrough, got %v", err)
		}
	}
	if b.State() != "closed" {
		t.Fatalf("expected closed state, got %s", b.State())
	}
}

func TestBreaker_DisabledRunsDirectly(t *testing.T) {
	t.Parallel()

	b := NewBreaker("golfgenius", BreakerConfig{Enabled: false}, nil, nil)
	out, err := b.Execute(func() (any, error) { return 7, nil })
	if err != nil || out.(int) != 7 {
		t.Fatalf("unexpected result out=%v err=%v", out, err)
	}
	if b.State() != "disabled" {
		t.Fatalf("expected disabled state, got %s", b.State())
	}
}
