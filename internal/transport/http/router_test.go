package httptransport

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"civicdesk/internal/directory"
	jwttoken "civicdesk/internal/jwt_token"
	"civicdesk/pkg/platform/httputil"
	"civicdesk/pkg/platform/middleware/auth"
	"civicdesk/pkg/requestcontext"
	"civicdesk/pkg/testutil"
)

// whoami echoes the caller so tests can see what the middleware chain attached.
type whoami struct{ logger *slog.Logger }

func (h whoami) Register(r chi.Router) {
	r.Get("/public", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		httputil.WriteJSON(w, http.StatusOK, map[string]any{
			"authenticated": requestcontext.Actor(ctx).IsAuthenticated(),
			"request_id":    requestcontext.RequestID(ctx),
			"client_ip":     requestcontext.ClientIP(ctx),
		})
	})
	r.With(auth.RequireActor(h.logger)).Get("/private", func(w http.ResponseWriter, r *http.Request) {
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"username": requestcontext.Actor(r.Context()).Username})
	})
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRouterAuthChain(t *testing.T) {
	tokens := jwttoken.NewJWTService("router-test-key", "civicdesk")
	users := directory.NewInMemory()
	router := NewRouter(Dependencies{
		Logger:    discard(),
		Tokens:    tokens,
		ActorSync: directory.Sync(users, discard()),
		Modules:   []Registrar{whoami{logger: discard()}},
	})

	testutil.Given(t, "no token", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodGet, "/public")
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		rr := testutil.DoRequest(router, req)

		testutil.Then(t, "public routes see an anonymous caller with request metadata", func(t *testing.T) {
			testutil.AssertStatusOK(t, rr)
			testutil.AssertJSONContains(t, rr, "authenticated", false)
			testutil.AssertJSONContains(t, rr, "client_ip", "203.0.113.9")
			assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
		})

		testutil.Then(t, "protected routes answer 401", func(t *testing.T) {
			rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/private"))
			testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
		})
	})

	testutil.Given(t, "a valid token", func(t *testing.T) {
		actor := testutil.NewStaff("reviewer")
		token, err := tokens.GenerateAccessToken(actor, time.Hour)
		require.NoError(t, err)

		req := testutil.NewRequest(t, http.MethodGet, "/private")
		req.Header.Set("Authorization", "Bearer "+token)
		rr := testutil.DoRequest(router, req)

		testutil.Then(t, "the actor reaches the handler and is mirrored into the directory", func(t *testing.T) {
			testutil.AssertStatusOK(t, rr)
			testutil.AssertJSONContains(t, rr, "username", "reviewer")
			ok, err := users.Exists(context.Background(), actor.ID)
			require.NoError(t, err)
			assert.True(t, ok)
		})
	})

	testutil.Given(t, "a forged token", func(t *testing.T) {
		req := testutil.NewRequest(t, http.MethodGet, "/public")
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		rr := testutil.DoRequest(router, req)

		testutil.Then(t, "even public routes refuse it", func(t *testing.T) {
			testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
		})
	})

	testutil.Given(t, "an inactive actor", func(t *testing.T) {
		actor := testutil.NewActor("suspended")
		actor.Active = false
		token, err := tokens.GenerateAccessToken(actor, time.Hour)
		require.NoError(t, err)

		req := testutil.NewRequest(t, http.MethodGet, "/private")
		req.Header.Set("Authorization", "Bearer "+token)
		rr := testutil.DoRequest(router, req)

		testutil.Then(t, "the request is rejected", func(t *testing.T) {
			testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
		})
	})
}

func TestHealthz(t *testing.T) {
	t.Run("all dependencies up", func(t *testing.T) {
		router := NewRouter(Dependencies{
			Logger: discard(),
			Tokens: jwttoken.NewJWTService("k", "i"),
			Health: map[string]HealthCheck{
				"postgres": func(context.Context) error { return nil },
			},
		})
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
		testutil.AssertStatusOK(t, rr)
		testutil.AssertJSONContains(t, rr, "status", "ok")
	})

	t.Run("a failing dependency degrades the service", func(t *testing.T) {
		router := NewRouter(Dependencies{
			Logger: discard(),
			Tokens: jwttoken.NewJWTService("k", "i"),
			Health: map[string]HealthCheck{
				"postgres": func(context.Context) error { return nil },
				"redis":    func(context.Context) error { return errors.New("dial tcp: refused") },
			},
		})
		rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/healthz"))
		testutil.AssertStatus(t, rr, http.StatusServiceUnavailable)
		testutil.AssertJSONContains(t, rr, "status", "degraded")
		testutil.AssertJSONContains(t, rr, "checks", map[string]any{"postgres": "ok", "redis": "unavailable"})
	})
}

func TestUnknownRoute(t *testing.T) {
	router := NewRouter(Dependencies{Logger: discard(), Tokens: jwttoken.NewJWTService("k", "i")})
	rr := testutil.DoRequest(router, testutil.NewRequest(t, http.MethodGet, "/nope"))
	testutil.AssertStatusAndError(t, rr, http.StatusNotFound, "not_found")
}
