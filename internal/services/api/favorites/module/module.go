// Package module wires favorites into the API
package module

import (
	modkit "mealmax/internal/modkit"
	"mealmax/internal/modkit/httpkit"
	favhttp "mealmax/internal/services/api/favorites/http"
	favrepo "mealmax/internal/services/api/favorites/repo"
	favsvc "mealmax/internal/services/api/favorites/service"
	mealsmod "mealmax/internal/services/api/meals/module"
)

// New constructs the favorites module; the meals ports must be passed with modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("favorites"), modkit.WithPrefix("/favorites")}, opts...)...)

	meals, ok := b.Ports.(mealsmod.Ports)
	if !ok || meals.Lookup == nil {
		panic("favorites module requires meals ports via modkit.WithPorts")
	}

	svc := favsvc.New(deps.PG, favrepo.NewPG(), meals.Lookup)
	return b.Module(nil, func(r httpkit.Router) {
		favhttp.Register(r, svc)
	})
}
