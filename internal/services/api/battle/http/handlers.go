// Package http provides http transport for battle sessions
package http

import (
	stdhttp "net/http"

	"mealmax/internal/core/battle"
	"mealmax/internal/modkit/httpkit"
	"mealmax/internal/services/api/battle/domain"
	svc "mealmax/internal/services/api/battle/service"
)

// Register mounts battle endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}

	httpkit.Post(r, "/sessions", h.open)
	r.Route("/sessions/{sid}", func(sr httpkit.Router) {
		sr.Use(httpkit.SessionScope("sid"))
		httpkit.Delete(sr, "/", h.drop)
		httpkit.PostJSON[domain.StageInput](sr, "/combatants", h.stage)
		httpkit.Get(sr, "/combatants", h.combatants)
		httpkit.Delete(sr, "/combatants", h.clear)
		httpkit.Post(sr, "/resolve", h.resolve)
	})
}

type handlers struct{ svc svc.Service }

// swagger:route POST /battle/sessions Battle openSession
// @Summary Open a battle session
// @Tags Battle
// @Produce json
// @Success 201 {object} domain.Session "created"
// @Router /battle/sessions [post]
func (h *handlers) open(r *stdhttp.Request) (any, error) {
	s, err := h.svc.Open(r.Context())
	if err != nil {
		return nil, err
	}
	return httpkit.Created(s), nil
}

// swagger:route DELETE /battle/sessions/{sid} Battle dropSession
// @Summary Drop a battle session
// @Tags Battle
// @Produce json
// @Param sid path string true "Session id"
// @Success 200 {object} domain.ClearOutput "ok"
// @Failure 404 {object} httpkit.Envelope
// @Router /battle/sessions/{sid} [delete]
func (h *handlers) drop(r *stdhttp.Request) (any, error) {
	sid := httpkit.Param(r, "sid")
	if err := h.svc.Drop(r.Context(), sid); err != nil {
		return nil, err
	}
	return domain.ClearOutput{ID: sid, Cleared: true}, nil
}

// swagger:route POST /battle/sessions/{sid}/combatants Battle stageCombatant
// @Summary Stage a catalog meal as a combatant
// @Tags Battle
// @Accept json
// @Produce json
// @Param sid path string true "Session id"
// @Param payload body domain.StageInput true "Meal"
// @Success 200 {object} domain.Session "ok"
// @Failure 404 {object} httpkit.Envelope
// @Failure 409 {object} httpkit.Envelope
// @Router /battle/sessions/{sid}/combatants [post]
func (h *handlers) stage(r *stdhttp.Request, in domain.StageInput) (any, error) {
	return h.svc.Stage(r.Context(), httpkit.Param(r, "sid"), in.Meal)
}

// swagger:route GET /battle/sessions/{sid}/combatants Battle listCombatants
// @Summary List staged combatants
// @Tags Battle
// @Produce json
// @Param sid path string true "Session id"
// @Success 200 {array} battle.Combatant "ok"
// @Failure 404 {object} httpkit.Envelope
// @Router /battle/sessions/{sid}/combatants [get]
func (h *handlers) combatants(r *stdhttp.Request) (any, error) {
	out, err := h.svc.Combatants(r.Context(), httpkit.Param(r, "sid"))
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []battle.Combatant{}
	}
	return out, nil
}

// swagger:route DELETE /battle/sessions/{sid}/combatants Battle clearCombatants
// @Summary Clear staged combatants
// @Tags Battle
// @Produce json
// @Param sid path string true "Session id"
// @Success 200 {object} domain.ClearOutput "ok"
// @Router /battle/sessions/{sid}/combatants [delete]
func (h *handlers) clear(r *stdhttp.Request) (any, error) {
	sid := httpkit.Param(r, "sid")
	if err := h.svc.ClearCombatants(r.Context(), sid); err != nil {
		return nil, err
	}
	return domain.ClearOutput{ID: sid, Cleared: true}, nil
}

// swagger:route POST /battle/sessions/{sid}/resolve Battle resolveBattle
// @Summary Resolve the battle between the two staged combatants
// @Tags Battle
// @Produce json
// @Param sid path string true "Session id"
// @Success 200 {object} domain.Result "ok"
// @Failure 412 {object} httpkit.Envelope
// @Failure 503 {object} httpkit.Envelope
// @Router /battle/sessions/{sid}/resolve [post]
func (h *handlers) resolve(r *stdhttp.Request) (any, error) {
	return h.svc.Resolve(r.Context(), httpkit.Param(r, "sid"))
}
