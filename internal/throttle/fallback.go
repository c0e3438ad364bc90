package throttle

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"civicdesk/pkg/platform/circuit"
	"civicdesk/pkg/requestcontext"
)

const defaultProbeInterval = 5 * time.Second

// FallbackLimiter counts on primary while it answers and switches to
// secondary once the breaker opens. While open, primary is probed at most
// once per probe interval so the breaker can close again.
type FallbackLimiter struct {
	primary   Limiter
	secondary Limiter
	breaker   *circuit.Breaker
	logger    *slog.Logger
	probe     time.Duration

	mu        sync.Mutex
	lastProbe time.Time
}

type FallbackOption func(*FallbackLimiter)

func WithProbeInterval(d time.Duration) FallbackOption {
	return func(f *FallbackLimiter) {
		if d > 0 {
			f.probe = d
		}
	}
}

func NewFallbackLimiter(primary, secondary Limiter, breaker *circuit.Breaker, logger *slog.Logger, opts ...FallbackOption) *FallbackLimiter {
	f := &FallbackLimiter{
		primary:   primary,
		secondary: secondary,
		breaker:   breaker,
		logger:    logger,
		probe:     defaultProbeInterval,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *FallbackLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	if f.breaker.IsOpen() && !f.probeDue(requestcontext.Now(ctx)) {
		return f.fallback(ctx, key, limit, window)
	}

	res, err := f.primary.Allow(ctx, key, limit, window)
	if err != nil {
		useFallback, change := f.breaker.RecordFailure()
		if change.Opened {
			f.logger.WarnContext(ctx, "throttle store unavailable, counting in memory",
				"breaker", f.breaker.Name(), "error", err)
		}
		if useFallback {
			return f.fallback(ctx, key, limit, window)
		}
		return nil, err
	}

	if _, change := f.breaker.RecordSuccess(); change.Closed {
		f.logger.InfoContext(ctx, "throttle store recovered", "breaker", f.breaker.Name())
	}
	return res, nil
}

func (f *FallbackLimiter) fallback(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	res, err := f.secondary.Allow(ctx, key, limit, window)
	if res != nil {
		res.Degraded = true
	}
	return res, err
}

func (f *FallbackLimiter) probeDue(now time.Time) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if now.Sub(f.lastProbe) < f.probe {
		return false
	}
	f.lastProbe = now
	return true
}
