package throttle

import (
	"context"
	"sync"
	"time"

	"civicdesk/pkg/requestcontext"
)

// MemoryLimiter keeps fixed-window counters in process. Counters are not
// shared between instances; it serves single-node runs and tests.
type MemoryLimiter struct {
	mu      sync.Mutex
	windows map[string]*fixedWindow
}

type fixedWindow struct {
	count   int
	resetAt time.Time
}

func NewMemoryLimiter() *MemoryLimiter {
	return &MemoryLimiter{windows: make(map[string]*fixedWindow)}
}

func (l *MemoryLimiter) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	now := requestcontext.Now(ctx)

	l.mu.Lock()
	defer l.mu.Unlock()

	l.evict(now)

	fw, ok := l.windows[key]
	if !ok {
		fw = &fixedWindow{resetAt: now.Add(window)}
		l.windows[key] = fw
	}

	if fw.count >= limit {
		return &Result{
			Allowed:    false,
			Limit:      limit,
			Remaining:  0,
			ResetAt:    fw.resetAt,
			RetryAfter: retryAfter(now, fw.resetAt),
		}, nil
	}

	fw.count++
	return &Result{
		Allowed:   true,
		Limit:     limit,
		Remaining: limit - fw.count,
		ResetAt:   fw.resetAt,
	}, nil
}

// Reset forgets the counter for key.
func (l *MemoryLimiter) Reset(_ context.Context, key string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.windows, key)
	return nil
}

// evict must be called with mu held.
func (l *MemoryLimiter) evict(now time.Time) {
	for key, fw := range l.windows {
		if !now.Before(fw.resetAt) {
			delete(l.windows, key)
		}
	}
}
