// Package module wires battle sessions into the API
package module

import (
	"time"

	"mealmax/internal/core/battle"
	modkit "mealmax/internal/modkit"
	"mealmax/internal/modkit/httpkit"
	battlehttp "mealmax/internal/services/api/battle/http"
	battlerepo "mealmax/internal/services/api/battle/repo"
	battlesvc "mealmax/internal/services/api/battle/service"
	mealsmod "mealmax/internal/services/api/meals/module"
)

// Options configure the battle module
type Options struct {
	// Source draws the resolution number; defaults to battle.CryptoSource
	Source battle.RandomSource

	// SessionStore is memory or redis; redis needs Deps.KV
	SessionStore string
	SessionTTL   time.Duration
}

// New constructs the battle module; the meals ports must be passed with modkit.WithPorts
func New(deps modkit.Deps, o Options, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("battle"), modkit.WithPrefix("/battle")}, opts...)...)

	meals, ok := b.Ports.(mealsmod.Ports)
	if !ok || meals.Lookup == nil || meals.Stats == nil {
		panic("battle module requires meals ports via modkit.WithPorts")
	}

	src := o.Source
	if src == nil {
		src = battle.CryptoSource{}
	}

	var sessions battlerepo.Sessions
	if o.SessionStore == "redis" {
		sessions = battlerepo.NewRedis(deps.KV, o.SessionTTL)
	} else {
		sessions = battlerepo.NewMemory(o.SessionTTL)
	}

	svc := battlesvc.New(sessions, meals.Lookup, battle.NewEngine(src, meals.Stats))
	return b.Module(nil, func(r httpkit.Router) {
		battlehttp.Register(r, svc)
	})
}
