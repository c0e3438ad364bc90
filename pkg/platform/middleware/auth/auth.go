package auth

import (
	"log/slog"
	"net/http"
	"strings"

	"civicdesk/pkg/domain"
	dErrors "civicdesk/pkg/domain-errors"
	"civicdesk/pkg/platform/httputil"
	"civicdesk/pkg/requestcontext"
)

// TokenValidator decodes a bearer token into the caller it represents.
type TokenValidator interface {
	ValidateToken(tokenString string) (domain.Actor, error)
}

func bearer(r *http.Request) (string, bool) {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok || strings.TrimSpace(token) == "" {
		return "", false
	}
	return strings.TrimSpace(token), true
}

// OptionalAuth attaches the actor when a valid bearer token is present and
// otherwise lets the request through anonymously. A token that is present but
// invalid or belongs to an inactive actor is still rejected.
func OptionalAuth(validator TokenValidator, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearer(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}
			actor, ok := authenticate(w, r, validator, token, logger)
			if !ok {
				return
			}
			next.ServeHTTP(w, r.WithContext(requestcontext.WithActor(r.Context(), actor)))
		})
	}
}

// RequireActor rejects anonymous requests. It must run after OptionalAuth,
// which has already refused bad tokens.
func RequireActor(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if !requestcontext.Actor(ctx).IsAuthenticated() {
				logger.WarnContext(ctx, "unauthorized access - no actor",
					"request_id", requestcontext.RequestID(ctx),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "authentication required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireElevated must run after RequireActor.
func RequireElevated(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			actor := requestcontext.Actor(ctx)
			if !actor.IsElevated() {
				logger.WarnContext(ctx, "forbidden - elevated actor required",
					"request_id", requestcontext.RequestID(ctx),
					"actor_id", actor.ID.String(),
				)
				httputil.WriteError(w, dErrors.New(dErrors.CodeForbidden, "staff privileges required"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func authenticate(w http.ResponseWriter, r *http.Request, validator TokenValidator, token string, logger *slog.Logger) (domain.Actor, bool) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	actor, err := validator.ValidateToken(token)
	if err != nil {
		logger.WarnContext(ctx, "unauthorized access - invalid token",
			"error", err,
			"request_id", requestID,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "Invalid or expired token"))
		return domain.Actor{}, false
	}
	if !actor.Active {
		logger.WarnContext(ctx, "unauthorized access - inactive actor",
			"actor_id", actor.ID.String(),
			"request_id", requestID,
		)
		httputil.WriteError(w, dErrors.New(dErrors.CodeUnauthorized, "account is inactive"))
		return domain.Actor{}, false
	}
	return actor, true
}
