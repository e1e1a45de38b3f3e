// Package service contains meal catalog workflows and the battle stats sink
package service

import (
	"context"
	"strings"

	"mealmax/internal/core/battle"
	"mealmax/internal/core/normalize"
	"mealmax/internal/modkit/repokit"
	perrs "mealmax/internal/platform/errors"
	"mealmax/internal/platform/logger"
	"mealmax/internal/services/api/meals/domain"
	"mealmax/internal/services/api/meals/repo"
)

// Service is the public service port
type Service interface {
	domain.ServicePort
	battle.StatsSink
}

// Svc implements the service port
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

var _ Service = (*Svc)(nil)

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("meals.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("meals.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:   binder.Bind(db),
		binder: binder,
		db:     db,
	}
}

// Create validates and inserts a meal; names are unique across the catalog
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.Meal, error) {
	name := normalize.Name(in.Meal)
	cuisine := normalize.Name(in.Cuisine)
	if name == "" {
		return domain.Meal{}, perrs.WithField(perrs.InvalidArgf("meal name is required"), "meal")
	}
	if cuisine == "" {
		return domain.Meal{}, perrs.WithField(perrs.InvalidArgf("cuisine is required"), "cuisine")
	}
	if !(in.Price > 0) {
		return domain.Meal{}, perrs.WithField(perrs.InvalidArgf("invalid price: %v, price must be a positive number", in.Price), "price")
	}
	d, err := battle.ParseDifficulty(in.Difficulty)
	if err != nil {
		return domain.Meal{}, perrs.WithField(perrs.InvalidArgf("invalid difficulty level: %s, must be LOW, MED or HIGH", in.Difficulty), "difficulty")
	}

	m, err := s.Repo.Insert(ctx, name, cuisine, in.Price, d)
	if err != nil {
		if perrs.IsDuplicateKey(err) {
			return domain.Meal{}, perrs.DuplicateKeyf("meal with name '%s' already exists", name)
		}
		return domain.Meal{}, perrs.FromPostgres(err, "create meal")
	}
	logger.C(ctx).Info().Int64("meal_id", m.ID).Str("meal", m.Name).Msg("meal created")
	return m, nil
}

// Delete soft deletes a meal; deleting twice is a not found
func (s *Svc) Delete(ctx context.Context, id int64) error {
	return repokit.InTx(ctx, s.db, s.binder, func(r repo.Repo) error {
		if err := checkLive(ctx, r, id); err != nil {
			return err
		}
		if err := r.MarkDeleted(ctx, id); err != nil {
			return perrs.FromPostgresf(err, "delete meal %d", id)
		}
		logger.C(ctx).Info().Int64("meal_id", id).Msg("meal marked as deleted")
		return nil
	})
}

// ByID returns a live meal
func (s *Svc) ByID(ctx context.Context, id int64) (domain.Meal, error) {
	m, err := s.Repo.Get(ctx, id)
	if err != nil {
		if perrs.IsCode(err, perrs.ErrorCodeNotFound) {
			return domain.Meal{}, perrs.NotFoundf("meal with ID %d not found", id)
		}
		return domain.Meal{}, perrs.FromPostgresf(err, "get meal %d", id)
	}
	if m.Deleted {
		return domain.Meal{}, perrs.NotFoundf("meal with ID %d has been deleted", id)
	}
	return m, nil
}

// ByName returns a live meal by its exact canonical name
func (s *Svc) ByName(ctx context.Context, name string) (domain.Meal, error) {
	n := normalize.Name(name)
	if n == "" {
		return domain.Meal{}, perrs.WithField(perrs.InvalidArgf("meal name is required"), "meal")
	}
	m, err := s.Repo.GetByName(ctx, n)
	if err != nil {
		if perrs.IsCode(err, perrs.ErrorCodeNotFound) {
			return domain.Meal{}, perrs.NotFoundf("meal with name %s not found", n)
		}
		return domain.Meal{}, perrs.FromPostgresf(err, "get meal %q", n)
	}
	if m.Deleted {
		return domain.Meal{}, perrs.NotFoundf("meal with name %s has been deleted", n)
	}
	return m, nil
}

// Leaderboard lists live meals with at least one battle
func (s *Svc) Leaderboard(ctx context.Context, sort domain.LeaderboardSort) ([]domain.LeaderboardEntry, error) {
	switch domain.LeaderboardSort(strings.ToLower(string(sort))) {
	case "", domain.SortWins:
		sort = domain.SortWins
	case domain.SortWinPct:
		sort = domain.SortWinPct
	default:
		return nil, perrs.WithField(perrs.InvalidArgf("invalid sort_by parameter: %s", sort), "sort")
	}
	out, err := s.Repo.Leaderboard(ctx, sort)
	if err != nil {
		return nil, perrs.FromPostgres(err, "leaderboard")
	}
	return out, nil
}

// Clear empties the catalog
func (s *Svc) Clear(ctx context.Context) error {
	err := repokit.InTx(ctx, s.db, s.binder, func(r repo.Repo) error {
		return r.Reset(ctx)
	})
	if err != nil {
		return perrs.FromPostgres(err, "clear meals")
	}
	logger.C(ctx).Info().Msg("meals cleared")
	return nil
}

// UpdateStats adds one battle to a live meal, and one win when r is a win
func (s *Svc) UpdateStats(ctx context.Context, id int64, r battle.Result) error {
	if r != battle.ResultWin && r != battle.ResultLoss {
		return perrs.InvalidArgf("invalid result: %s, expected 'win' or 'loss'", r)
	}
	return repokit.InTx(ctx, s.db, s.binder, func(rr repo.Repo) error {
		if err := checkLive(ctx, rr, id); err != nil {
			return err
		}
		if err := rr.AddBattle(ctx, id, r == battle.ResultWin); err != nil {
			return perrs.FromPostgresf(err, "update stats for meal %d", id)
		}
		logger.C(ctx).Debug().Int64("meal_id", id).Str("result", string(r)).Msg("meal stats updated")
		return nil
	})
}

// RecordOutcome implements battle.StatsSink
func (s *Svc) RecordOutcome(ctx context.Context, id int64, r battle.Result) error {
	return s.UpdateStats(ctx, id, r)
}

func checkLive(ctx context.Context, r repo.Repo, id int64) error {
	deleted, err := r.Deleted(ctx, id)
	if err != nil {
		if perrs.IsCode(err, perrs.ErrorCodeNotFound) {
			return perrs.NotFoundf("meal with ID %d not found", id)
		}
		return perrs.FromPostgresf(err, "load meal %d", id)
	}
	if deleted {
		return perrs.NotFoundf("meal with ID %d has been deleted", id)
	}
	return nil
}
