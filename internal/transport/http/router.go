// Package httptransport assembles the chi router: the shared middleware
// chain, the operational endpoints and every module's routes.
package httptransport

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"civicdesk/internal/platform/metrics"
	"civicdesk/pkg/platform/httputil"
	"civicdesk/pkg/platform/middleware/auth"
	"civicdesk/pkg/platform/middleware/metadata"
	"civicdesk/pkg/platform/middleware/requestid"
	"civicdesk/pkg/platform/middleware/requesttime"
)

const healthTimeout = 2 * time.Second

// Registrar mounts a module's routes.
type Registrar interface {
	Register(r chi.Router)
}

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

// Dependencies is everything the router needs. Metrics, ActorSync and
// Health entries may be nil.
type Dependencies struct {
	Logger    *slog.Logger
	Tokens    auth.TokenValidator
	Metrics   *metrics.Metrics
	ActorSync func(http.Handler) http.Handler
	Health    map[string]HealthCheck
	Modules   []Registrar
}

func NewRouter(deps Dependencies) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.Recoverer)
	r.Use(requestid.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(requesttime.Middleware)
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware)
	}

	r.Get("/healthz", healthHandler(deps.Health, deps.Logger))
	r.Handle("/metrics", metrics.Handler())

	r.Group(func(r chi.Router) {
		r.Use(auth.OptionalAuth(deps.Tokens, deps.Logger))
		if deps.ActorSync != nil {
			r.Use(deps.ActorSync)
		}
		for _, m := range deps.Modules {
			m.Register(r)
		}
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusNotFound, map[string]string{"error": "not_found"})
	})
	return r
}

func healthHandler(checks map[string]HealthCheck, logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()

		status := http.StatusOK
		report := map[string]string{}
		for name, check := range checks {
			if check == nil {
				continue
			}
			if err := check(ctx); err != nil {
				logger.WarnContext(ctx, "health check failed", "dependency", name, "error", err)
				report[name] = "unavailable"
				status = http.StatusServiceUnavailable
				continue
			}
			report[name] = "ok"
		}

		body := map[string]any{"status": "ok", "checks": report}
		if status != http.StatusOK {
			body["status"] = "degraded"
		}
		httputil.WriteJSON(w, status, body)
	}
}
