package modkit

import (
	"net/http"

	"mealmax/internal/modkit/httpkit"
	pstrings "mealmax/internal/platform/strings"
)

// Built is the resolved build configuration
// Ports holds whatever was passed with WithPorts, i.e. the ports this module consumes
type Built struct {
	Name   string
	Prefix string
	Mw     []func(http.Handler) http.Handler
	Ports  any
}

// Build applies opts in order; later options win
// it panics on a blank name or a root prefix since both are wiring bugs
func Build(opts ...Option) Built {
	var c buildCfg
	for _, o := range opts {
		o(&c)
	}
	return Built{
		Name:   pstrings.MustString(c.name, "module name"),
		Prefix: pstrings.MustPrefix(c.prefix),
		Mw:     append([]func(http.Handler) http.Handler(nil), c.mw...),
		Ports:  c.ports,
	}
}

// Module turns b into a Module exposing ports that mounts routes via register
func (b Built) Module(ports any, register func(httpkit.Router)) Module {
	return &mounted{b: b, ports: ports, register: register}
}

type mounted struct {
	b        Built
	ports    any
	register func(httpkit.Router)
}

func (m *mounted) Name() string   { return m.b.Name }
func (m *mounted) Prefix() string { return m.b.Prefix }
func (m *mounted) Ports() any     { return m.ports }

func (m *mounted) MountRoutes(r httpkit.Router) {
	r.Route(m.b.Prefix, func(sub httpkit.Router) {
		if len(m.b.Mw) > 0 {
			sub.Use(m.b.Mw...)
		}
		if m.register != nil {
			m.register(sub)
		}
	})
}
