// Package throttle limits how often a single client address may hit the
// public submission endpoints.
package throttle

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"civicdesk/internal/platform/config"
	dErrors "civicdesk/pkg/domain-errors"
	"civicdesk/pkg/platform/httputil"
	"civicdesk/pkg/requestcontext"
)

// Result is the outcome of one counted request.
type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	ResetAt    time.Time
	RetryAfter int
	// Degraded is set when the count came from a fallback store.
	Degraded bool
}

// Limiter counts a hit for key inside a fixed window.
type Limiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error)
}

type Middleware struct {
	limiter  Limiter
	logger   *slog.Logger
	limit    int
	window   time.Duration
	disabled bool
}

type Option func(*Middleware)

// WithDisabled lets every request through without counting.
func WithDisabled(disabled bool) Option {
	return func(m *Middleware) {
		m.disabled = disabled
	}
}

func New(limiter Limiter, logger *slog.Logger, cfg config.ThrottleConfig, opts ...Option) *Middleware {
	m := &Middleware{
		limiter: limiter,
		logger:  logger,
		limit:   cfg.Limit,
		window:  cfg.Window,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.limit <= 0 || m.window <= 0 {
		m.disabled = true
	}
	if m.disabled {
		logger.Info("public submission throttle disabled")
	}
	return m
}

// Guard counts the request against the client address. A limiter failure lets
// the request through.
func (m *Middleware) Guard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.disabled {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		ip := requestcontext.ClientIP(ctx)
		if ip == "" {
			ip = "unknown"
		}

		result, err := m.limiter.Allow(ctx, ip, m.limit, m.window)
		if err != nil {
			m.logger.ErrorContext(ctx, "failed to check submission throttle",
				"error", err,
				"ip_prefix", ipPrefix(ip),
			)
			next.ServeHTTP(w, r)
			return
		}

		addHeaders(w, result)

		if !result.Allowed {
			m.logger.WarnContext(ctx, "public submission throttled",
				"request_id", requestcontext.RequestID(ctx),
				"ip_prefix", ipPrefix(ip),
			)
			w.Header().Set("Retry-After", strconv.Itoa(result.RetryAfter))
			httputil.WriteError(w, dErrors.New(dErrors.CodeTooManyRequests, "Too many submissions from this address. Please try again later."))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func addHeaders(w http.ResponseWriter, result *Result) {
	if result == nil {
		return
	}
	w.Header().Set("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	w.Header().Set("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt.Unix(), 10))
	if result.Degraded {
		w.Header().Set("X-RateLimit-Status", "degraded")
	}
}

// ipPrefix drops the host part so full addresses stay out of the logs.
func ipPrefix(ip string) string {
	parsed := net.ParseIP(ip)
	if parsed == nil {
		return ip
	}
	if v4 := parsed.To4(); v4 != nil {
		return v4.Mask(net.CIDRMask(24, 32)).String() + "/24"
	}
	return parsed.Mask(net.CIDRMask(48, 128)).String() + "/48"
}

func retryAfter(now, resetAt time.Time) int {
	secs := int(resetAt.Sub(now).Round(time.Second) / time.Second)
	if secs < 1 {
		return 1
	}
	return secs
}
