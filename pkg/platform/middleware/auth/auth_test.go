package auth

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"civicdesk/pkg/domain"
	"civicdesk/pkg/requestcontext"
	"civicdesk/pkg/testutil"
)

type stubValidator map[string]domain.Actor

func (v stubValidator) ValidateToken(token string) (domain.Actor, error) {
	actor, ok := v[token]
	if !ok {
		return domain.Actor{}, errors.New("token is malformed")
	}
	return actor, nil
}

func discard() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// echo reports who the chain let through.
var echo = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	actor := requestcontext.Actor(r.Context())
	w.Header().Set("X-Actor", actor.Username)
	w.WriteHeader(http.StatusNoContent)
})

func withBearer(req *http.Request, token string) *http.Request {
	req.Header.Set("Authorization", "Bearer "+token)
	return req
}

func TestOptionalAuth(t *testing.T) {
	clerk := domain.Actor{ID: domain.UserID(uuid.New()), Username: "clerk", Elevated: true, Active: true}
	retired := domain.Actor{ID: domain.UserID(uuid.New()), Username: "retired", Active: false}
	h := OptionalAuth(stubValidator{"good": clerk, "stale": retired}, discard())(echo)

	t.Run("no header passes anonymously", func(t *testing.T) {
		rr := testutil.DoRequest(h, testutil.NewRequest(t, http.MethodGet, "/"))
		testutil.AssertStatus(t, rr, http.StatusNoContent)
		assert.Empty(t, rr.Header().Get("X-Actor"))
	})

	t.Run("blank bearer passes anonymously", func(t *testing.T) {
		rr := testutil.DoRequest(h, withBearer(testutil.NewRequest(t, http.MethodGet, "/"), "  "))
		testutil.AssertStatus(t, rr, http.StatusNoContent)
	})

	t.Run("valid token attaches the actor", func(t *testing.T) {
		rr := testutil.DoRequest(h, withBearer(testutil.NewRequest(t, http.MethodGet, "/"), "good"))
		testutil.AssertStatus(t, rr, http.StatusNoContent)
		assert.Equal(t, "clerk", rr.Header().Get("X-Actor"))
	})

	t.Run("invalid token is refused", func(t *testing.T) {
		rr := testutil.DoRequest(h, withBearer(testutil.NewRequest(t, http.MethodGet, "/"), "forged"))
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})

	t.Run("inactive actor is refused", func(t *testing.T) {
		rr := testutil.DoRequest(h, withBearer(testutil.NewRequest(t, http.MethodGet, "/"), "stale"))
		testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")
	})
}

func TestRequireActor(t *testing.T) {
	h := RequireActor(discard())(echo)

	rr := testutil.DoRequest(h, testutil.NewRequest(t, http.MethodGet, "/"))
	testutil.AssertStatusAndError(t, rr, http.StatusUnauthorized, "unauthorized")

	rr = testutil.DoRequest(h, testutil.WithActor(testutil.NewRequest(t, http.MethodGet, "/"), testutil.NewActor("amal")))
	testutil.AssertStatus(t, rr, http.StatusNoContent)
}

func TestRequireElevated(t *testing.T) {
	h := RequireElevated(discard())(echo)

	rr := testutil.DoRequest(h, testutil.WithActor(testutil.NewRequest(t, http.MethodGet, "/"), testutil.NewActor("amal")))
	testutil.AssertStatusAndError(t, rr, http.StatusForbidden, "forbidden")

	rr = testutil.DoRequest(h, testutil.WithActor(testutil.NewRequest(t, http.MethodGet, "/"), testutil.NewStaff("clerk")))
	testutil.AssertStatus(t, rr, http.StatusNoContent)
}
