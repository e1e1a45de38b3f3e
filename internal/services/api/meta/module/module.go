// Package module wires meta endpoints into the API
package module

import (
	"time"

	"mealmax/internal/core/version"
	modkit "mealmax/internal/modkit"
	"mealmax/internal/modkit/httpkit"
	metahttp "mealmax/internal/services/api/meta/http"
)

// Tables are checked by /meta/db-check
var Tables = []string{"meals", "favorites", "locations"}

// New constructs the meta module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)

	d := metahttp.Deps{
		ServiceName: version.Service,
		StartedAt:   time.Now(),
		PG:          deps.PG,
		KV:          deps.KV,
		Tables:      Tables,
	}
	return b.Module(nil, func(r httpkit.Router) {
		metahttp.Register(r, d)
	})
}
