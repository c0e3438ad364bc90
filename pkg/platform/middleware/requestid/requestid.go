package requestid

import (
	"net/http"

	"github.com/google/uuid"

	"civicdesk/pkg/requestcontext"
)

const Header = "X-Request-ID"

// Middleware reuses an inbound X-Request-ID or mints one, echoes it on the
// response and stores it in the context.
func Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(Header)
		if id == "" || len(id) > 128 {
			id = uuid.NewString()
		}
		w.Header().Set(Header, id)
		next.ServeHTTP(w, r.WithContext(requestcontext.WithRequestID(r.Context(), id)))
	})
}
