// Package http provides http transport for favorites
package http

import (
	stdhttp "net/http"

	"mealmax/internal/modkit/httpkit"
	"mealmax/internal/services/api/favorites/domain"
	svc "mealmax/internal/services/api/favorites/service"
)

// Register mounts favorites endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.AddInput](r, "/", h.add)
	httpkit.Get(r, "/", h.list)
	httpkit.Delete(r, "/", h.clear)
	httpkit.Get(r, "/count", h.count)
	httpkit.Delete(r, "/{meal_id}", h.remove)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /favorites Favorites addFavorite
// @Summary Add a meal to favorites
// @Tags Favorites
// @Accept json
// @Produce json
// @Param payload body domain.AddInput true "Meal"
// @Success 201 {object} domain.Favorite "created"
// @Failure 404 {object} httpkit.Envelope
// @Failure 409 {object} httpkit.Envelope
// @Router /favorites [post]
func (h *handlers) add(r *stdhttp.Request, in domain.AddInput) (any, error) {
	f, err := h.svc.Add(r.Context(), in.MealID)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(f), nil
}

// swagger:route GET /favorites Favorites listFavorites
// @Summary List favorite meals
// @Tags Favorites
// @Produce json
// @Success 200 {array} domain.Favorite "ok"
// @Router /favorites [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	return h.svc.List(r.Context())
}

// swagger:route DELETE /favorites Favorites clearFavorites
// @Summary Clear favorites
// @Tags Favorites
// @Produce json
// @Success 200 {object} domain.ClearOutput "ok"
// @Router /favorites [delete]
func (h *handlers) clear(r *stdhttp.Request) (any, error) {
	if err := h.svc.Clear(r.Context()); err != nil {
		return nil, err
	}
	return domain.ClearOutput{Cleared: true}, nil
}

// swagger:route GET /favorites/count Favorites countFavorites
// @Summary Count favorite meals
// @Tags Favorites
// @Produce json
// @Success 200 {object} domain.CountOutput "ok"
// @Router /favorites/count [get]
func (h *handlers) count(r *stdhttp.Request) (any, error) {
	n, err := h.svc.Count(r.Context())
	if err != nil {
		return nil, err
	}
	return domain.CountOutput{Count: n}, nil
}

// swagger:route DELETE /favorites/{meal_id} Favorites removeFavorite
// @Summary Remove a meal from favorites
// @Tags Favorites
// @Produce json
// @Param meal_id path int true "Meal id"
// @Success 200 {object} domain.RemoveOutput "ok"
// @Failure 404 {object} httpkit.Envelope
// @Router /favorites/{meal_id} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	id, err := httpkit.Int64Param(r, "meal_id")
	if err != nil {
		return nil, err
	}
	if err := h.svc.Remove(r.Context(), id); err != nil {
		return nil, err
	}
	return domain.RemoveOutput{MealID: id, Removed: true}, nil
}
