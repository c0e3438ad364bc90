package testutil

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"civicdesk/pkg/domain"
	"civicdesk/pkg/requestcontext"
)

// NewActor returns an active, non-staff actor with a fresh id.
func NewActor(username string) domain.Actor {
	return domain.Actor{ID: domain.UserID(uuid.New()), Username: username, Active: true}
}

// NewStaff returns an active staff actor with a fresh id.
func NewStaff(username string) domain.Actor {
	a := NewActor(username)
	a.Elevated = true
	return a
}

// WithActor adds the actor to the request context, as the auth middleware would.
func WithActor(req *http.Request, actor domain.Actor) *http.Request {
	return req.WithContext(requestcontext.WithActor(req.Context(), actor))
}

// WithTime pins the request clock.
func WithTime(req *http.Request, t time.Time) *http.Request {
	return req.WithContext(requestcontext.WithTime(req.Context(), t))
}
