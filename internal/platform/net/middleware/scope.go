package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"mealmax/internal/platform/logger"
	pnet "mealmax/internal/platform/net"
)

// Scope copies the request id, and the URL param when one is named, onto the
// context so logger.C tags every line written while serving the request
// Mount it after RequestID; with a param it must sit inside the route that declares it
func Scope(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			rid := pnet.RequestID(ctx)
			sid := ""
			if param != "" {
				sid = chi.URLParam(r, param)
			}
			if rid == "" && sid == "" {
				next.ServeHTTP(w, r)
				return
			}
			ctx = pnet.WithRequest(ctx, rid, sid)
			ctx = logger.WithRequest(ctx, rid, sid)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
