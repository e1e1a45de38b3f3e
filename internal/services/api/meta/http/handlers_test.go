package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	phttp "mealmax/internal/platform/net/http"
	"mealmax/internal/platform/store"
)

// fakePG answers to_regclass for a fixed table set
type fakePG struct {
	tables  map[string]bool
	pingErr error
}

func (f *fakePG) Ping(context.Context) error { return f.pingErr }

func (f *fakePG) Exec(context.Context, string, ...any) (store.CommandTag, error) { return nil, nil }

func (f *fakePG) Query(context.Context, string, ...any) (store.Rows, error) { return nil, nil }

func (f *fakePG) QueryRow(_ context.Context, _ string, args ...any) store.Row {
	return boolRow{v: f.tables[args[0].(string)], err: f.pingErr}
}

type boolRow struct {
	v   bool
	err error
}

func (r boolRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*(dest[0].(*bool)) = r.v
	return nil
}

type fakeKV struct {
	store.KeyValue
	err error
}

func (f fakeKV) Ping(context.Context) error { return f.err }

func serve(t *testing.T, d Deps, path string) (int, map[string]any) {
	t.Helper()
	mux := chi.NewRouter()
	phttp.AdaptChi(mux).Route("/meta", func(r phttp.Router) { Register(r, d) })

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))
	var env map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return rec.Code, env
}

func TestHealth(t *testing.T) {
	code, env := serve(t, Deps{ServiceName: "mealmax-api", StartedAt: time.Now()}, "/meta/health")
	data := env["data"].(map[string]any)
	if code != stdhttp.StatusOK || data["status"] != "healthy" || data["service"] != "mealmax-api" {
		t.Fatalf("health = %d %v", code, data)
	}
}

func TestReady_Statuses(t *testing.T) {
	cases := []struct {
		name string
		deps Deps
		want string
	}{
		{"all ok", Deps{PG: &fakePG{}, KV: fakeKV{}}, "ok"},
		{"redis skipped", Deps{PG: &fakePG{}}, "degraded"},
		{"redis down", Deps{PG: &fakePG{}, KV: fakeKV{err: errors.New("refused")}}, "fail"},
		{"nothing", Deps{}, "degraded"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, env := serve(t, tc.deps, "/meta/ready")
			if got := env["data"].(map[string]any)["status"]; got != tc.want {
				t.Fatalf("status = %v, want %s", got, tc.want)
			}
		})
	}
}

func TestDBCheck(t *testing.T) {
	tables := []string{"meals", "favorites"}
	pg := &fakePG{tables: map[string]bool{"public.meals": true, "public.favorites": true}}

	code, env := serve(t, Deps{PG: pg, Tables: tables}, "/meta/db-check")
	if code != stdhttp.StatusOK || env["data"].(map[string]any)["database_status"] != "healthy" {
		t.Fatalf("db-check = %d %v", code, env)
	}

	delete(pg.tables, "public.favorites")
	if code, _ := serve(t, Deps{PG: pg, Tables: tables}, "/meta/db-check"); code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("missing table status = %d", code)
	}

	pg.pingErr = errors.New("conn closed")
	if code, _ := serve(t, Deps{PG: pg, Tables: tables}, "/meta/db-check"); code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("broken db status = %d", code)
	}

	if code, _ := serve(t, Deps{}, "/meta/db-check"); code != stdhttp.StatusServiceUnavailable {
		t.Fatalf("no db status = %d", code)
	}
}
