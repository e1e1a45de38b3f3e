// Package module wires weather locations into the API
package module

import (
	modkit "mealmax/internal/modkit"
	"mealmax/internal/modkit/httpkit"
	"mealmax/internal/services/api/locations/domain"
	lochttp "mealmax/internal/services/api/locations/http"
	locrepo "mealmax/internal/services/api/locations/repo"
	locsvc "mealmax/internal/services/api/locations/service"
)

// New constructs the locations module around a weather provider
func New(deps modkit.Deps, weather domain.WeatherPort, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("locations"), modkit.WithPrefix("/locations")}, opts...)...)

	svc := locsvc.New(deps.PG, locrepo.NewPG(), weather)
	return b.Module(nil, func(r httpkit.Router) {
		lochttp.Register(r, svc)
	})
}
