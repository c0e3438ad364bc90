package requestid

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"civicdesk/pkg/requestcontext"
)

func run(req *http.Request) (seen string, rr *httptest.ResponseRecorder) {
	rr = httptest.NewRecorder()
	Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.RequestID(r.Context())
	})).ServeHTTP(rr, req)
	return seen, rr
}

func TestMiddleware(t *testing.T) {
	t.Run("reuses the inbound id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(Header, "edge-42")
		seen, rr := run(req)
		assert.Equal(t, "edge-42", seen)
		assert.Equal(t, "edge-42", rr.Header().Get(Header))
	})

	t.Run("mints one when missing", func(t *testing.T) {
		seen, rr := run(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Len(t, seen, 36)
		assert.Equal(t, seen, rr.Header().Get(Header))
	})

	t.Run("replaces an oversized id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(Header, strings.Repeat("x", 200))
		seen, _ := run(req)
		assert.Len(t, seen, 36)
	})
}
