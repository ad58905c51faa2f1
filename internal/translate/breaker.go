package translate

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

type breakerState string

const (
	breakerClosed   breakerState = "CLOSED"
	breakerOpen     breakerState = "OPEN"
	breakerHalfOpen breakerState = "HALF_OPEN"
)

// Breaker stops dispatching fragments to a failing backend. Once the failure
// threshold is hit, every remaining fragment falls back to its original text
// immediately instead of waiting out another timeout each. A single probe is
// allowed after resetTimeout.
type Breaker struct {
	mu            sync.Mutex
	state         breakerState
	failureCount  int
	threshold     int
	resetTimeout  time.Duration
	nextRetryTime time.Time
	logger        *zap.Logger
}

func NewBreaker(threshold int, resetTimeout time.Duration, logger *zap.Logger) *Breaker {
	if threshold <= 0 {
		threshold = 3
	}
	if resetTimeout <= 0 {
		resetTimeout = 30 * time.Second
	}
	return &Breaker{
		state:        breakerClosed,
		threshold:    threshold,
		resetTimeout: resetTimeout,
		logger:       logger,
	}
}

// Allow reports whether a backend call may proceed.
func (b *Breaker) Allow() bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == breakerOpen && time.Now().After(b.nextRetryTime) {
		b.state = breakerHalfOpen
		b.logger.Info("translation breaker half-open, probing backend")
	}

	return b.state != breakerOpen
}

func (b *Breaker) RecordSuccess() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.state == breakerHalfOpen {
		b.logger.Info("translation backend recovered")
	}
	b.state = breakerClosed
	b.failureCount = 0
}

func (b *Breaker) RecordFailure() {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.failureCount++
	if b.state == breakerHalfOpen || b.failureCount >= b.threshold {
		if b.state != breakerOpen {
			b.logger.Warn("translation breaker open, remaining fragments keep original text",
				zap.Int("failures", b.failureCount),
			)
		}
		b.state = breakerOpen
		b.nextRetryTime = time.Now().Add(b.resetTimeout)
	}
}
