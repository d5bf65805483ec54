package kit

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// UnmatchedRoute labels requests that no route matched, keeping metric
// cardinality bounded.
const UnmatchedRoute = "unmatched"

// ChiRoutePattern returns the matched chi route pattern without a trailing
// slash, or UnmatchedRoute.
func ChiRoutePattern(r *http.Request) string {
	rctx := chi.RouteContext(r.Context())
	if rctx == nil {
		return UnmatchedRoute
	}
	rp := rctx.RoutePattern()
	if rp == "" {
		return UnmatchedRoute
	}
	if rp != "/" {
		rp = strings.TrimSuffix(rp, "/")
	}
	return rp
}
