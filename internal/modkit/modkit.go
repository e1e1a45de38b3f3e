// Package modkit wires API modules: the deps they share, their build options and the Module contract
package modkit

import (
	"mealmax/internal/modkit/httpkit"
	"mealmax/internal/modkit/repokit"
	"mealmax/internal/platform/config"
	"mealmax/internal/platform/logger"
	"mealmax/internal/platform/store"
)

// Deps holds the dependencies every module is built from
// PG and KV may be nil; modules check before use
type Deps struct {
	Log logger.Logger
	Cfg config.Conf
	PG  repokit.TxRunner
	KV  store.KeyValue
}

// Module is what the API mounts
type Module interface {
	Name() string
	Prefix() string

	// Ports is the module's cross-module port set, nil when nothing depends on it
	Ports() any

	// MountRoutes mounts the module under its prefix on r
	MountRoutes(r httpkit.Router)
}
