// Package http provides http transport for the meal catalog
package http

import (
	stdhttp "net/http"

	"mealmax/internal/modkit/httpkit"
	"mealmax/internal/services/api/meals/domain"
	svc "mealmax/internal/services/api/meals/service"
)

// Register mounts meal endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.PostJSON[domain.CreateInput](r, "/", h.create)
	httpkit.Delete(r, "/", h.clear)
	httpkit.Get(r, "/leaderboard", h.leaderboard)
	httpkit.Get(r, "/by-name/{name}", h.byName)
	httpkit.Get(r, "/{id}", h.byID)
	httpkit.Delete(r, "/{id}", h.delete)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /meals Meals createMeal
// @Summary Add a meal to the catalog
// @Tags Meals
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Meal"
// @Success 201 {object} domain.Meal "created"
// @Failure 400 {object} httpkit.Envelope
// @Failure 409 {object} httpkit.Envelope
// @Router /meals [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	m, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(m), nil
}

// swagger:route DELETE /meals Meals clearMeals
// @Summary Delete every meal
// @Tags Meals
// @Produce json
// @Success 200 {object} domain.ClearOutput "ok"
// @Router /meals [delete]
func (h *handlers) clear(r *stdhttp.Request) (any, error) {
	if err := h.svc.Clear(r.Context()); err != nil {
		return nil, err
	}
	return domain.ClearOutput{Cleared: true}, nil
}

// swagger:route GET /meals/leaderboard Meals mealLeaderboard
// @Summary Meals ranked by wins or win percentage
// @Tags Meals
// @Produce json
// @Param sort query string false "wins or win_pct"
// @Success 200 {array} domain.LeaderboardEntry "ok"
// @Failure 400 {object} httpkit.Envelope
// @Router /meals/leaderboard [get]
func (h *handlers) leaderboard(r *stdhttp.Request) (any, error) {
	out, err := h.svc.Leaderboard(r.Context(), domain.LeaderboardSort(httpkit.Query(r, "sort")))
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.LeaderboardEntry{}
	}
	return out, nil
}

// swagger:route GET /meals/by-name/{name} Meals mealByName
// @Summary Get a meal by name
// @Tags Meals
// @Produce json
// @Param name path string true "Meal name"
// @Success 200 {object} domain.Meal "ok"
// @Failure 404 {object} httpkit.Envelope
// @Router /meals/by-name/{name} [get]
func (h *handlers) byName(r *stdhttp.Request) (any, error) {
	return h.svc.ByName(r.Context(), httpkit.Param(r, "name"))
}

// swagger:route GET /meals/{id} Meals mealByID
// @Summary Get a meal by id
// @Tags Meals
// @Produce json
// @Param id path int true "Meal id"
// @Success 200 {object} domain.Meal "ok"
// @Failure 404 {object} httpkit.Envelope
// @Router /meals/{id} [get]
func (h *handlers) byID(r *stdhttp.Request) (any, error) {
	id, err := httpkit.Int64Param(r, "id")
	if err != nil {
		return nil, err
	}
	return h.svc.ByID(r.Context(), id)
}

// swagger:route DELETE /meals/{id} Meals deleteMeal
// @Summary Soft delete a meal
// @Tags Meals
// @Produce json
// @Param id path int true "Meal id"
// @Success 200 {object} domain.DeleteOutput "ok"
// @Failure 404 {object} httpkit.Envelope
// @Router /meals/{id} [delete]
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
