// Package http provides http transport for weather locations
package http

import (
	stdhttp "net/http"

	"mealmax/internal/modkit/httpkit"
	"mealmax/internal/services/api/locations/domain"
	svc "mealmax/internal/services/api/locations/service"
)

// Register mounts location endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.CreateInput](r, "/", h.create)
	httpkit.Get(r, "/", h.list)
	httpkit.Delete(r, "/", h.clear)
	httpkit.Get(r, "/favorites/weather", h.weather(domain.KindCurrent))
	httpkit.Get(r, "/favorites/forecast", h.weather(domain.KindForecast))
	httpkit.Get(r, "/{id}", h.byID)
	httpkit.Delete(r, "/{id}", h.delete)
	httpkit.Put(r, "/{id}/favorite", h.favorite(true))
	httpkit.Delete(r, "/{id}/favorite", h.favorite(false))
}

type handlers struct{ svc svc.Service }

// swagger:route POST /locations Locations createLocation
// @Summary Store a location
// @Tags Locations
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Location"
// @Success 201 {object} domain.Location "created"
// @Failure 409 {object} httpkit.Envelope
// @Router /locations [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	l, err := h.svc.Create(r.Context(), in.Location)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(l), nil
}

// swagger:route GET /locations Locations listLocations
// @Summary List locations
// @Tags Locations
// @Produce json
// @Success 200 {array} domain.Location "ok"
// @Router /locations [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context())
}

// swagger:route DELETE /locations Locations clearLocations
// @Summary Drop every location
// @Tags Locations
// @Produce json
// @Success 200 {object} domain.ClearOutput "ok"
// @Router /locations [delete]
func (h *handlers) clear(r *stdhttp.Request) (any, error) {
	if err := h.svc.Clear(r.Context()); err != nil {
		return nil, err
	}
	return domain.ClearOutput{Cleared: true}, nil
}

// swagger:route GET /locations/favorites/weather Locations favoritesWeather
// @Summary Current weather for favorite locations
// @Tags Locations
// @Produce json
// @Success 200 {array} domain.Report "ok"
// @Failure 503 {object} httpkit.Envelope
// @Router /locations/favorites/weather [get]
//
// swagger:route GET /locations/favorites/forecast Locations favoritesForecast
// @Summary Forecast for favorite locations
// @Tags Locations
// @Produce json
// @Success 200 {array} domain.Report "ok"
// @Failure 503 {object} httpkit.Envelope
// @Router /locations/favorites/forecast [get]
func (h *handlers) weather(kind domain.Kind) func(*stdhttp.Request) (any, error) {
	return func(r *stdhttp.Request) (any, error) {
		return h.svc.FavoritesWeather(r.Context(), kind)
	}
}

// swagger:route GET /locations/{id} Locations locationByID
// @Summary Get a location
// @Tags Locations
// @Produce json
// @Param id path int true "Location id"
// @Success 200 {object} domain.Location "ok"
// @Failure 404 {object} httpkit.Envelope
// @Router /locations/{id} [get]
func (h *handlers) byID(r *stdhttp.Request) (any, error) {
	id, err := httpkit.Int64Param(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.ByID(r.Context(), id)
}

// swagger:route DELETE /locations/{id} Locations deleteLocation
// @Summary Soft delete a location
// @Tags Locations
// @Produce json
// @Param id path int true "Location id"
// @Success 200 {object} domain.DeleteOutput "ok"
// @Failure 404 {object} httpkit.Envelope
// @Router /locations/{id} [delete]
func (h *handlers) delete(r *stdhttp.Request) (any, error) {
	id, err := httpkit.Int64Param(r, "id")
	if err != nil {
		return nil, err
	}
	if err := h.svc.Delete(r.Context(), id); err != nil {
		return nil, err
	}
	return domain.DeleteOutput{ID: id, Deleted: true}, nil
}

// swagger:route PUT /locations/{id}/favorite Locations favoriteLocation
// @Summary Mark a location as favorite
// @Tags Locations
// @Produce json
// @Param id path int true "Location id"
// @Success 200 {object} domain.Location "ok"
// @Router /locations/{id}/favorite [put]
//
// swagger:route DELETE /locations/{id}/favorite Locations unfavoriteLocation
// @Summary Unmark a favorite location
// @Tags Locations
// @Produce json
// @Param id path int true "Location id"
// @Success 200 {object} domain.Location "ok"
// @Router /locations/{id}/favorite [delete]
func (h *handlers) favorite(on bool) func(*stdhttp.Request) (any, error) {
	return func(r *stdhttp.Request) (any, error) {
		id, err := httpkit.Int64Param(r, "id")
		if err != nil {
			return nil, err
		}
		return h.svc.SetFavorite(r.Context(), id, on)
	}
}
