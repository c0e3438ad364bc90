// Package directory records the actors known to the system. Identity is
// issued elsewhere; the directory only mirrors what authenticated tokens
// claim so assignments and statistics can refer to real users.
package directory

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"civicdesk/pkg/domain"
	"civicdesk/pkg/requestcontext"
)

// User is the directory's copy of an actor.
type User struct {
	ID         domain.UserID
	Username   string
	Email      string
	IsStaff    bool
	IsActive   bool
	DateJoined time.Time
}

// FromActor builds the directory row for an authenticated actor.
func FromActor(actor domain.Actor, now time.Time) *User {
	return &User{
		ID:         actor.ID,
		Username:   actor.Username,
		IsStaff:    actor.Elevated,
		IsActive:   actor.Active,
		DateJoined: now,
	}
}

// Recorder persists directory rows.
type Recorder interface {
	Upsert(ctx context.Context, user *User) error
}

// Sync mirrors every authenticated actor into the directory. It must run
// after OptionalAuth. Failures are logged and never block the request.
func Sync(recorder Recorder, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			actor := requestcontext.Actor(ctx)
			if actor.IsAuthenticated() {
				if err := recorder.Upsert(ctx, FromActor(actor, requestcontext.Now(ctx))); err != nil {
					logger.ErrorContext(ctx, "failed to sync actor into directory",
						"error", err,
						"actor_id", actor.ID.String(),
					)
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
