package httpkit

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	perr "mealmax/internal/platform/errors"
)

// Param returns a trimmed route parameter
func Param(r *http.Request, name string) string {
	return strings.TrimSpace(chi.URLParam(r, name))
}

// Int64Param parses a positive integer route parameter
func Int64Param(r *http.Request, name string) (int64, error) {
	raw := Param(r, name)
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || v <= 0 {
		return 0, perr.WithField(perr.InvalidArgf("invalid %s: %q", name, raw), name)
	}
	return v, nil
}

// Query returns a trimmed query string value
func Query(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}
