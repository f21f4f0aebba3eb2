package command

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"

	"golang.org/x/time/rate"
)

// Middleware wraps a handler (logging, rate limiting, metrics).
type Middleware func(next HandlerFunc) HandlerFunc

// Apply applies middlewares in order; the last in the list ends up outermost.
func Apply(h HandlerFunc, mws ...Middleware) HandlerFunc {
	for _, mw := range mws {
		h = mw(h)
	}
	return h
}

// WithLogger logs every invocation and its outcome.
func WithLogger() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, inv *Invocation) error {
			err := next(ctx, inv)
			if err != nil {
				log.Printf("[WARN] /%s failed: %v", inv.Command, err)
			} else {
				log.Printf("[INFO] /%s invoked", inv.Command)
			}
			return err
		}
	}
}

// ErrRateLimited is returned by the rate limit middleware when a caller
// exceeds their budget.
var ErrRateLimited = errors.New("rate limited")

// WithRateLimit enforces a per-key token bucket (e.g. one bucket per user).
// keyFn extracts the bucket key from the invocation; an empty key skips the
// check. Limiters accumulate per key and are never evicted, which is fine
// for the bounded user population of a chat.
func WithRateLimit(limit rate.Limit, burst int, keyFn func(inv *Invocation) string) Middleware {
	var (
		mu       sync.Mutex
		limiters = make(map[string]*rate.Limiter)
	)
	limiterFor := func(key string) *rate.Limiter {
		mu.Lock()
		defer mu.Unlock()
		lim, ok := limiters[key]
		if !ok {
			lim = rate.NewLimiter(limit, burst)
			limiters[key] = lim
		}
		return lim
	}

	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, inv *Invocation) error {
			key := keyFn(inv)
			if key == "" {
				return next(ctx, inv)
			}
			if !limiterFor(key).Allow() {
				return fmt.Errorf("/%s: %w", inv.Command, ErrRateLimited)
			}
			return next(ctx, inv)
		}
	}
}
