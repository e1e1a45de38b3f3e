// Package api provides the HTTP API for the application
package api

import (
	"context"
	"time"

	"mealmax/internal/core/battle"
	perr "mealmax/internal/platform/errors"
	"mealmax/internal/platform/config"
	"mealmax/internal/platform/logger"
	phttp "mealmax/internal/platform/net/http"
	"mealmax/internal/platform/store"

	"mealmax/internal/modkit"
	"mealmax/internal/modkit/httpkit"
	"mealmax/internal/modkit/repokit"
	"mealmax/internal/modkit/swaggerkit"

	battlemod "mealmax/internal/services/api/battle/module"
	favrepo "mealmax/internal/services/api/favorites/repo"
	favmod "mealmax/internal/services/api/favorites/module"
	locdomain "mealmax/internal/services/api/locations/domain"
	locrepo "mealmax/internal/services/api/locations/repo"
	locmod "mealmax/internal/services/api/locations/module"
	mealsrepo "mealmax/internal/services/api/meals/repo"
	mealsmod "mealmax/internal/services/api/meals/module"
	metamod "mealmax/internal/services/api/meta/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool

	// Random draws battle outcomes; nil uses crypto/rand
	Random battle.RandomSource
	// Weather backs the favorite location reports
	Weather locdomain.WeatherPort

	// SessionStore is memory or redis
	SessionStore string
	SessionTTL   time.Duration
}

// Migrate creates the tables every module needs; statements are idempotent
func Migrate(ctx context.Context, db repokit.TxRunner) error {
	if db == nil {
		return perr.Unavailablef("migrate: database not configured")
	}
	return db.Tx(ctx, func(q repokit.Queryer) error {
		for _, s := range []struct{ name, sql string }{
			{"meals", mealsrepo.Schema},
			{"favorites", favrepo.Schema},
			{"locations", locrepo.Schema},
		} {
			if _, err := q.Exec(ctx, s.sql); err != nil {
				return perr.Wrapf(err, perr.ErrorCodeDB, "migrate %s", s.name)
			}
		}
		return nil
	})
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) {
	// shared deps for modules
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
		KV:  opt.Store.RDS,
	}
	if opt.Logger != nil {
		deps.Log = *opt.Logger
	}

	// meals owns the lookup and stats ports the others build on
	meals := mealsmod.New(deps)
	mealsPorts := modkit.MustPortsOf[mealsmod.Ports](meals)

	mods := []modkit.Module{
		metamod.New(deps),
		meals,
		battlemod.New(deps, battlemod.Options{
			Source:       opt.Random,
			SessionStore: opt.SessionStore,
			SessionTTL:   opt.SessionTTL,
		}, modkit.WithPorts(mealsPorts)),
		favmod.New(deps, modkit.WithPorts(mealsPorts)),
		locmod.New(deps, opt.Weather),
	}

	// docs and pprof sit outside the versioned stack
	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

	log := deps.Log
	httpkit.MountAPIV1(r, httpkit.CommonStack(), func(api httpkit.Router) {
		for _, m := range mods {
			m.MountRoutes(api)
			log.Debug().Str("module", m.Name()).Str("prefix", "/api/v1"+m.Prefix()).Msg("module mounted")
		}
	})
}
