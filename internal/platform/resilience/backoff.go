package resilience

import (
	"context"
	"time"
)

// RetryPolicy computes exponential backoff delays bounded by MaxDelay.
// A server supplied retry-after hint is honoured when it exceeds the computed delay.
type RetryPolicy struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 3,
		BaseDelay:  time.Second,
		MaxDelay:   60 * time.Second,
	}
}

func NormalizeRetryPolicy(p RetryPolicy) RetryPolicy {
	defaults := DefaultRetryPolicy()
	if p.MaxRetries < 0 {
		p.MaxRetries = 0
	}
	if p.BaseDelay <= 0 {
		p.BaseDelay = defaults.BaseDelay
	}
	if p.MaxDelay <= 0 {
		p.MaxDelay = defaults.MaxDelay
	}
	if p.MaxDelay < p.BaseDelay {
		p.MaxDelay = p.BaseDelay
	}
	return p
}

// Attempts is the total number of tries including the first one.
func (p RetryPolicy) Attempts() int {
	return p.MaxRetries + 1
}

// Delay returns the wait before the next try after the zero-based attempt failed.
func (p RetryPolicy) Delay(attempt int, retryAfter time.Duration) time.Duration {
	wait := p.MaxDelay
	if attempt < 0 {
		attempt = 0
	}
	if attempt < 32 {
		if exp := p.BaseDelay << uint(attempt); exp > 0 && exp < p.MaxDelay {
			wait = exp
		}
	}
	if retryAfter > wait {
		wait = retryAfter
	}
	return wait
}

// Sleep waits for d or until ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
