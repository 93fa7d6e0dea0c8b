package resilience

import (
	"context"
	"github.com/cenkalti/backoff/v4"
	"math/rand/v2"
	"time"
)

type RetrySettings struct {
	MaxRetries uint64
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

func DefaultRetrySettings() RetrySettings {
	return RetrySettings{
		MaxRetries: 3,
		BaseDelay:  500 * time.Millisecond,
		MaxDelay:   10 * time.Second,
	}
}

// NewBackOff returns a bounded, context aware decorrelated jitter schedule.
func (s RetrySettings) NewBackOff(ctx context.Context) backoff.BackOff {
	return backoff.WithContext(backoff.WithMaxRetries(NewDecorrelatedJitter(s.BaseDelay, s.MaxDelay), s.MaxRetries), ctx)
}

// DecorrelatedJitter draws each delay uniformly from [base, 3*previous],
// capped at max, so concurrent retriers drift apart instead of retrying in
// lock step.
type DecorrelatedJitter struct {
	base time.Duration
	max  time.Duration
	prev time.Duration
}

func NewDecorrelatedJitter(base, max time.Duration) *DecorrelatedJitter {
	if base <= 0 {
		base = time.Millisecond
	}
	if max < base {
		max = base
	}

	return &DecorrelatedJitter{base: base, max: max, prev: base}
}

func (b *DecorrelatedJitter) NextBackOff() time.Duration {
	upper := b.prev * 3
	if upper < b.base {
		upper = b.base
	}

	next := b.base + time.Duration(rand.Int64N(int64(upper-b.base)+1))
	if next > b.max {
		next = b.max
	}
	b.prev = next

	return next
}

func (b *DecorrelatedJitter) Reset() {
	b.prev = b.base
}
