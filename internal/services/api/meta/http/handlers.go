// Package http provides meta endpoints
package http

import (
	stdctx "context"
	"net/http"
	"time"

	"mealmax/internal/core/version"
	"mealmax/internal/modkit/httpkit"
	perr "mealmax/internal/platform/errors"
	"mealmax/internal/platform/store"

	"golang.org/x/sync/errgroup"
)

const probeTimeout = 2 * time.Second

// Pinger is satisfied by adapters that expose Ping
type Pinger interface {
	Ping(stdctx.Context) error
}

// Deps are the handler dependencies
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          store.RowQuerier
	KV          store.KeyValue

	// Tables must exist for db-check to pass
	Tables []string
}

type handlers struct{ deps Deps }

// Register mounts health, readiness, version, service and db-check routes
func Register(r httpkit.Router, d Deps) {
	h := &handlers{deps: d}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/db-check", h.dbCheck)
}

// HealthResponse is the health payload
// swagger:model
type HealthResponse struct {
	Status  string `json:"status"  example:"healthy"`
	Service string `json:"service" example:"mealmax-api"`
	Started string `json:"started" example:"2026-01-02T13:00:00Z"`
	Now     string `json:"now"     example:"2026-01-02T13:05:00Z"`
}

// ReadyCheck describes a single dependency check
type ReadyCheck struct {
	Name   string `json:"name"   example:"pg"`
	Status string `json:"status" example:"ok"` // ok fail skipped unknown
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432 connect: connection refused"`
}

// ReadyResponse summarizes readiness
type ReadyResponse struct {
	Status string       `json:"status" example:"ok"` // ok degraded fail
	Checks []ReadyCheck `json:"checks"`
	Now    string       `json:"now"    example:"2026-01-02T13:05:00Z"`
}

// ServiceResponse describes service info
type ServiceResponse struct {
	Name    string `json:"name"    example:"mealmax-api"`
	Started string `json:"started" example:"2026-01-02T13:00:00Z"`
	Uptime  int64  `json:"uptime"  example:"300"`
}

// DBCheckResponse reports database connectivity and schema presence
type DBCheckResponse struct {
	Database string   `json:"database_status" example:"healthy"`
	Tables   []string `json:"tables"          example:"meals,favorites,locations"`
}

// swagger:route GET /meta/health Meta metaHealth
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse "ok"
// @Router /meta/health [get]
func (h *handlers) health(_ *http.Request) (any, error) {
	return HealthResponse{
		Status:  "healthy",
		Service: h.deps.ServiceName,
		Started: h.started(),
		Now:     time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func (h *handlers) started() string { return h.deps.StartedAt.UTC().Format(time.RFC3339) }

// swagger:route GET /meta/ready Meta metaReady
// @Summary Readiness probe with dependency checks
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse "ok"
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := stdctx.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	deps := []struct {
		name string
		dep  any
	}{{"pg", nil}, {"redis", nil}}
	// typed nils must stay untyped so they read as skipped
	if h.deps.PG != nil {
		deps[0].dep = h.deps.PG
	}
	if h.deps.KV != nil {
		deps[1].dep = h.deps.KV
	}

	checks := make([]ReadyCheck, len(deps))
	var g errgroup.Group
	for i, d := range deps {
		g.Go(func() error {
			checks[i] = probe(ctx, d.name, d.dep)
			return nil
		})
	}
	_ = g.Wait()

	return ReadyResponse{
		Status: overall(checks),
		Checks: checks,
		Now:    time.Now().UTC().Format(time.RFC3339),
	}, nil
}

func probe(ctx stdctx.Context, name string, dep any) ReadyCheck {
	c := ReadyCheck{Name: name, Status: "unknown"}
	switch p := dep.(type) {
	case nil:
		c.Status = "skipped"
	case Pinger:
		c.Status = "ok"
		if err := p.Ping(ctx); err != nil {
			c.Status, c.Error = "fail", err.Error()
		}
	}
	return c
}

// overall is fail if anything failed, degraded if anything is not ok
func overall(checks []ReadyCheck) string {
	out := "ok"
	for _, c := range checks {
		if c.Status == "fail" {
			return "fail"
		}
		if c.Status != "ok" {
			out = "degraded"
		}
	}
	return out
}

// swagger:route GET /meta/version Meta metaVersion
// @Summary Build and version info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo "ok"
// @Router /meta/version [get]
func (h *handlers) version(_ *http.Request) (any, error) {
	return version.Info(), nil
}

// swagger:route GET /meta/service Meta metaService
// @Summary Service info and uptime
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse "ok"
// @Router /meta/service [get]
func (h *handlers) service(_ *http.Request) (any, error) {
	return ServiceResponse{
		Name:    h.deps.ServiceName,
		Started: h.started(),
		Uptime:  int64(time.Since(h.deps.StartedAt).Seconds()),
	}, nil
}

// swagger:route GET /meta/db-check Meta metaDBCheck
// @Summary Database connectivity and table check
// @Tags Meta
// @Produce json
// @Success 200 {object} DBCheckResponse "ok"
// @Failure 503 {object} httpkit.Envelope
// @Router /meta/db-check [get]
func (h *handlers) dbCheck(r *http.Request) (any, error) {
	if h.deps.PG == nil {
		return nil, perr.Unavailablef("database not configured")
	}
	ctx, cancel := stdctx.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	for _, t := range h.deps.Tables {
		var ok bool
		if err := h.deps.PG.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`, "public."+t).Scan(&ok); err != nil {
			return nil, perr.Wrapf(err, perr.ErrorCodeUnavailable, "database check failed")
		}
		if !ok {
			return nil, perr.Unavailablef("%s table does not exist", t)
		}
	}
	return DBCheckResponse{Database: "healthy", Tables: h.deps.Tables}, nil
}
