package extract

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Veraticus/show-me-the-data/internal/model"
)

// rateLimiter is a token bucket refilled continuously at capacity per minute.
type rateLimiter struct {
	lastRefill time.Time
	now        func() time.Time
	tokens     float64
	capacity   float64
	mu         sync.Mutex
}

func newRateLimiter(requestsPerMinute int, now func() time.Time) *rateLimiter {
	if requestsPerMinute <= 0 {
		requestsPerMinute = 60
	}
	return &rateLimiter{
		lastRefill: now(),
		now:        now,
		tokens:     float64(requestsPerMinute),
		capacity:   float64(requestsPerMinute),
	}
}

// reserve takes a token if one is available, otherwise it reports how long
// until the next one.
func (rl *rateLimiter) reserve() (time.Duration, bool) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	elapsed := now.Sub(rl.lastRefill)
	rl.lastRefill = now
	rl.tokens += elapsed.Minutes() * rl.capacity
	if rl.tokens > rl.capacity {
		rl.tokens = rl.capacity
	}

	if rl.tokens >= 1 {
		rl.tokens--
		return 0, true
	}
	missing := 1 - rl.tokens
	return time.Duration(missing / rl.capacity * float64(time.Minute)), false
}

// wait blocks until a token is available or the context is canceled.
func (rl *rateLimiter) wait(ctx context.Context) error {
	for {
		delay, ok := rl.reserve()
		if ok {
			return nil
		}

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("rate limiter canceled: %w", ctx.Err())
		case <-timer.C:
		}
	}
}

// limited throttles calls to a remote extractor.
type limited struct {
	next    Extractor
	limiter *rateLimiter
}

// WithRateLimit allows at most requestsPerMinute calls to ex, queueing the rest.
func WithRateLimit(ex Extractor, requestsPerMinute int) Extractor {
	return &limited{
		next:    ex,
		limiter: newRateLimiter(requestsPerMinute, time.Now),
	}
}

func (l *limited) Name() string {
	return l.next.Name()
}

func (l *limited) Extract(ctx context.Context, category model.Category, text string) (Extraction, error) {
	if err := l.limiter.wait(ctx); err != nil {
		return Extraction{}, err
	}
	return l.next.Extract(ctx, category, text)
}
