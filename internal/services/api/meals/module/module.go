// Package module wires the meal catalog into the API
package module

import (
	"mealmax/internal/core/battle"
	modkit "mealmax/internal/modkit"
	"mealmax/internal/modkit/httpkit"
	mealsdomain "mealmax/internal/services/api/meals/domain"
	mealshttp "mealmax/internal/services/api/meals/http"
	mealsrepo "mealmax/internal/services/api/meals/repo"
	mealssvc "mealmax/internal/services/api/meals/service"
)

// Ports is what the meals module exposes to other modules
type Ports struct {
	Lookup mealsdomain.LookupPort
	Stats  battle.StatsSink
}

// New constructs the meals module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meals"), modkit.WithPrefix("/meals")}, opts...)...)

	svc := mealssvc.New(deps.PG, mealsrepo.NewPG())
	return b.Module(Ports{Lookup: svc, Stats: svc}, func(r httpkit.Router) {
		mealshttp.Register(r, svc)
	})
}
