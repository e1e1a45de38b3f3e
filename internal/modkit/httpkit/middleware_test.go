package httpkit

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	pnet "mealmax/internal/platform/net"
	"mealmax/internal/platform/net/middleware"
)

func stacked(final http.Handler) http.Handler {
	stack := CommonStack()
	for i := len(stack) - 1; i >= 0; i-- {
		final = stack[i](final)
	}
	return final
}

func TestCommonStack_TagsRequest(t *testing.T) {
	var rid string
	h := stacked(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rid = pnet.RequestID(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/meals/", nil)
	req.Header.Set("X-Request-ID", "rid-7")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "rid-7", rid)
	assert.NotEmpty(t, rec.Header().Get("Cache-Control"))
}

func TestCommonStack_PanicBecomesEnvelope(t *testing.T) {
	h := stacked(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { panic("kitchen fire") }))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/v1/battle/sessions", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status_code":500`)
}

func TestSessionScope_TagsContext(t *testing.T) {
	mux := chi.NewRouter()
	mux.Use(middleware.RequestID())
	var sid string
	mux.Route("/sessions/{sid}", func(r chi.Router) {
		r.Use(SessionScope("sid"))
		r.Get("/", func(w http.ResponseWriter, r *http.Request) { sid = pnet.SessionID(r.Context()) })
	})

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/sessions/s-42/", nil))
	assert.Equal(t, "s-42", sid)
}
