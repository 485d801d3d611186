package api

import (
	"errors"
	"sync"
	"time"
)

// ErrBreakerOpen is returned while the breaker is cooling down after
// repeated transport failures.
var ErrBreakerOpen = errors.New("api unreachable, not retrying yet")

// breaker fails fast once the API stops answering at the transport level.
// Only connection-level failures trip it; HTTP error statuses are real
// answers and do not count.
type breaker struct {
	mu          sync.Mutex
	maxFailures int
	cooldown    time.Duration
	failures    int
	lastFailure time.Time
	state       string
}

func newBreaker(maxFailures int, cooldown time.Duration) *breaker {
	return &breaker{
		maxFailures: maxFailures,
		cooldown:    cooldown,
		state:       "closed",
	}
}

func (b *breaker) Execute(fn func() error) error {
	b.mu.Lock()
	if b.state == "open" {
		if time.Since(b.lastFailure) > b.cooldown {
			b.state = "half-open"
		} else {
			b.mu.Unlock()
			return ErrBreakerOpen
		}
	}
	b.mu.Unlock()

	err := fn()

	b.mu.Lock()
	defer b.mu.Unlock()

	if err != nil {
		b.failures++
		b.lastFailure = time.Now()
		if b.failures >= b.maxFailures {
			b.state = "open"
		}
		return err
	}

	b.state = "closed"
	b.failures = 0
	return nil
}
