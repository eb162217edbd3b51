package kit

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ChiRoutePatternOrPath labels metrics with the chi route pattern so that
// /sessions/{sid} stays one series, falling back to the raw path outside
// chi routing.
func ChiRoutePatternOrPath(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if rp := rctx.RoutePattern(); rp != "" {
			return rp
		}
	}
	return r.URL.Path
}
