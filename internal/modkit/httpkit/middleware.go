package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"mealmax/internal/platform/net/middleware"
)

const (
	requestTimeout = 30 * time.Second
	slowRequest    = 750 * time.Millisecond
)

// CommonStack is the middleware every /api/v1 route runs behind
func CommonStack() []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		middleware.RequestID(),
		middleware.Scope(""),
		middleware.RealIP(),
		middleware.RecoverJSON,
		middleware.NoCache(),
		middleware.AccessLog(slowRequest),
		middleware.CORS(middleware.CORSOptions{}),
		middleware.Compress(flate.BestSpeed),
		middleware.StripSlashes(),
		middleware.Timeout(requestTimeout),
	}
}

// SessionScope tags the request for routes under a {param} session segment
func SessionScope(param string) func(http.Handler) http.Handler {
	return middleware.Scope(param)
}
