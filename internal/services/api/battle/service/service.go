// Package service runs contest sessions: staging catalog meals and resolving battles
package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"mealmax/internal/core/battle"
	perrs "mealmax/internal/platform/errors"
	"mealmax/internal/platform/logger"
	"mealmax/internal/services/api/battle/domain"
	"mealmax/internal/services/api/battle/repo"
	mealsdomain "mealmax/internal/services/api/meals/domain"
)

// Service is the public service port
type Service interface {
	domain.ServicePort
}

// Svc implements the service port
type Svc struct {
	sessions repo.Sessions
	meals    mealsdomain.LookupPort
	engine   *battle.Engine
	newID    func() string
}

var _ Service = (*Svc)(nil)

// New constructs the service
func New(sessions repo.Sessions, meals mealsdomain.LookupPort, engine *battle.Engine) *Svc {
	if sessions == nil {
		panic("battle.Service requires a non nil session store")
	}
	if meals == nil {
		panic("battle.Service requires a non nil meal lookup")
	}
	if engine == nil {
		panic("battle.Service requires a non nil engine")
	}
	return &Svc{sessions: sessions, meals: meals, engine: engine, newID: uuid.NewString}
}

// Open starts an empty session
func (s *Svc) Open(ctx context.Context) (domain.Session, error) {
	id := s.newID()
	if err := s.sessions.Create(ctx, id); err != nil {
		return domain.Session{}, mapErr(err, "open session")
	}
	logger.C(ctx).Info().Str("battle_session", id).Msg("battle session opened")
	return domain.Session{ID: id, Combatants: []battle.Combatant{}}, nil
}

// Stage looks up a live meal by name and stages it into the session
func (s *Svc) Stage(ctx context.Context, sid, meal string) (domain.Session, error) {
	if err := checkSID(sid); err != nil {
		return domain.Session{}, err
	}
	m, err := s.meals.ByName(ctx, meal)
	if err != nil {
		return domain.Session{}, err
	}
	c := m.Combatant()

	var staged []battle.Combatant
	err = s.sessions.Update(ctx, sid, func(reg *battle.Registry) error {
		if err := reg.Stage(c); err != nil {
			return err
		}
		staged = reg.List()
		return nil
	})
	if err != nil {
		logger.C(ctx).Debug().Err(err).Str("battle_session", sid).Int64("meal_id", c.ID).Msg("stage rejected")
		return domain.Session{}, mapErr(err, "stage combatant")
	}
	logger.C(ctx).Info().
		Str("battle_session", sid).
		Int64("meal_id", c.ID).
		Str("meal", c.Name).
		Float64("score", battle.Score(c)).
		Msg("combatant staged")
	return domain.Session{ID: sid, Combatants: staged}, nil
}

// Combatants lists the staged combatants in insertion order
func (s *Svc) Combatants(ctx context.Context, sid string) ([]battle.Combatant, error) {
	if err := checkSID(sid); err != nil {
		return nil, err
	}
	out, err := s.sessions.View(ctx, sid)
	if err != nil {
		return nil, mapErr(err, "list combatants")
	}
	return out, nil
}

// ClearCombatants empties the session
func (s *Svc) ClearCombatants(ctx context.Context, sid string) error {
	if err := checkSID(sid); err != nil {
		return err
	}
	err := s.sessions.Update(ctx, sid, func(reg *battle.Registry) error {
		reg.Clear()
		return nil
	})
	if err != nil {
		return mapErr(err, "clear combatants")
	}
	logger.C(ctx).Info().Str("battle_session", sid).Msg("combatants cleared")
	return nil
}

// Resolve runs the contest; on success only the winner stays staged
func (s *Svc) Resolve(ctx context.Context, sid string) (domain.Result, error) {
	if err := checkSID(sid); err != nil {
		return domain.Result{}, err
	}
	var out battle.Outcome
	err := s.sessions.Update(ctx, sid, func(reg *battle.Registry) error {
		var err error
		out, err = s.engine.Resolve(ctx, reg)
		return err
	})
	if err != nil {
		var pe *battle.PersistenceError
		if errors.As(err, &pe) {
			// the loser's loss may already be recorded
			logger.C(ctx).Error().Err(err).
				Str("battle_session", sid).
				Int64("meal_id", pe.ID).
				Str("result", string(pe.Outcome)).
				Msg("battle stats update failed")
		} else {
			logger.C(ctx).Warn().Err(err).Str("battle_session", sid).Msg("battle not resolved")
		}
		return domain.Result{}, mapErr(err, "resolve battle")
	}

	logger.C(ctx).Info().
		Str("battle_session", sid).
		Str("winner", out.Winner.Name).
		Str("loser", out.Loser.Name).
		Float64("winner_score", out.WinnerScore).
		Float64("loser_score", out.LoserScore).
		Float64("draw", out.Draw).
		Bool("upset", out.Upset).
		Msg("battle resolved")
	return domain.ResultFrom(out), nil
}

// Drop forgets the session
func (s *Svc) Drop(ctx context.Context, sid string) error {
	if err := checkSID(sid); err != nil {
		return err
	}
	if err := s.sessions.Drop(ctx, sid); err != nil {
		return mapErr(err, "drop session")
	}
	logger.C(ctx).Info().Str("battle_session", sid).Msg("battle session dropped")
	return nil
}

func checkSID(sid string) error {
	if _, err := uuid.Parse(sid); err != nil {
		return perrs.WithField(perrs.InvalidArgf("invalid session id: %q", sid), "sid")
	}
	return nil
}

// mapErr turns core and session store errors into coded platform errors
// core errors are checked first since a PersistenceError wraps a platform error from the stats sink
func mapErr(err error, op string) error {
	var re *battle.RandomnessError
	var pe *battle.PersistenceError
	switch {
	case err == nil:
		return nil
	case errors.Is(err, battle.ErrCapacity):
		return perrs.WithOp(perrs.Wrap(err, perrs.ErrorCodeConflict, "battle already has two combatants"), op)
	case errors.Is(err, battle.ErrDuplicate):
		return perrs.WithOp(perrs.Wrap(err, perrs.ErrorCodeConflict, "meal is already staged"), op)
	case errors.Is(err, battle.ErrPrecondition):
		return perrs.WithOp(perrs.Wrap(err, perrs.ErrorCodeFailedPrecondition, "two combatants must be staged for a battle"), op)
	case errors.As(err, &re):
		return perrs.WithOp(perrs.Wrap(err, perrs.ErrorCodeUnavailable, "randomness unavailable"), op)
	case errors.As(err, &pe):
		// always a server error, whatever the sink reported
		code := perrs.ErrorCodeDB
		if perrs.IsCode(pe.Err, perrs.ErrorCodeUnavailable) {
			code = perrs.ErrorCodeUnavailable
		}
		return perrs.WithOp(perrs.Wrapf(err, code, "battle stats update failed: %s", perrs.WireFrom(pe.Err).Message), op)
	case errors.Is(err, repo.ErrNoSession):
		return perrs.Wrap(err, perrs.ErrorCodeNotFound, "battle session not found")
	case errors.Is(err, repo.ErrBusy):
		return perrs.Wrap(err, perrs.ErrorCodeConflict, "battle session is busy, retry")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return perrs.Wrap(err, perrs.ErrorCodeUnavailable, op+" canceled")
	}
	if _, ok := perrs.As(err); ok {
		return err
	}
	return perrs.Wrap(err, perrs.ErrorCodeUnknown, op)
}
