package resilience

import (
	"context"
	"errors"
	"github.com/sony/gobreaker"
	"log/slog"
	"sync"
	"time"
)

type BreakerSettings struct {
	// FailureThreshold is the number of consecutive failures that opens the breaker.
	FailureThreshold uint32
	// Cooldown is how long an open breaker rejects calls before letting a probe through.
	Cooldown time.Duration
	// HalfOpenMaxRequests probes must succeed before the breaker closes again.
	HalfOpenMaxRequests uint32
}

func DefaultBreakerSettings() BreakerSettings {
	return BreakerSettings{
		FailureThreshold:    5,
		Cooldown:            30 * time.Second,
		HalfOpenMaxRequests: 1,
	}
}

// BreakerRegistry owns one circuit breaker per outbound dependency. It is
// shared by every caller in the process, so the failure counts of a
// dependency are shared too.
type BreakerRegistry struct {
	settings BreakerSettings

	mu       sync.Mutex
	breakers map[string]*gobreaker.CircuitBreaker
}

func NewBreakerRegistry(settings BreakerSettings) *BreakerRegistry {
	if settings.FailureThreshold == 0 {
		settings.FailureThreshold = DefaultBreakerSettings().FailureThreshold
	}
	if settings.HalfOpenMaxRequests == 0 {
		settings.HalfOpenMaxRequests = 1
	}

	return &BreakerRegistry{
		settings: settings,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

func (r *BreakerRegistry) Get(dependency string) *gobreaker.CircuitBreaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cb, ok := r.breakers[dependency]; ok {
		return cb
	}

	threshold := r.settings.FailureThreshold
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        dependency,
		MaxRequests: r.settings.HalfOpenMaxRequests,
		Timeout:     r.settings.Cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		IsSuccessful: func(err error) bool {
			// the caller giving up is not a fault of the dependency
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			slog.Warn("circuit breaker state changed",
				slog.String("dependency", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		},
	})
	r.breakers[dependency] = cb

	return cb
}

func (r *BreakerRegistry) State(dependency string) gobreaker.State {
	return r.Get(dependency).State()
}

// States reports the state of every breaker created so far.
func (r *BreakerRegistry) States() map[string]string {
	r.mu.Lock()
	defer r.mu.Unlock()

	states := make(map[string]string, len(r.breakers))
	for name, cb := range r.breakers {
		states[name] = cb.State().String()
	}

	return states
}
