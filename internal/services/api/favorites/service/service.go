// Package service manages the favorite meals list
package service

import (
	"context"

	"mealmax/internal/modkit/repokit"
	perrs "mealmax/internal/platform/errors"
	"mealmax/internal/platform/logger"
	"mealmax/internal/services/api/favorites/domain"
	"mealmax/internal/services/api/favorites/repo"
	mealsdomain "mealmax/internal/services/api/meals/domain"
)

// Service is the public service port
type Service interface {
	domain.ServicePort
}

// Svc implements the service port
type Svc struct {
	Repo  repo.Repo
	meals mealsdomain.LookupPort
}

var _ Service = (*Svc)(nil)

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], meals mealsdomain.LookupPort) *Svc {
	if db == nil {
		panic("favorites.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("favorites.Service requires a non nil Repo binder")
	}
	if meals == nil {
		panic("favorites.Service requires a non nil meal lookup")
	}
	return &Svc{Repo: binder.Bind(db), meals: meals}
}

// Add puts a live meal on the list
func (s *Svc) Add(ctx context.Context, mealID int64) (domain.Favorite, error) {
	m, err := s.meals.ByID(ctx, mealID)
	if err != nil {
		return domain.Favorite{}, err
	}
	at, err := s.Repo.Add(ctx, m.ID)
	if err != nil {
		if perrs.IsDuplicateKey(err) {
			logger.C(ctx).Warn().Int64("meal_id", m.ID).Msg("meal already in favorites")
			return domain.Favorite{}, perrs.DuplicateKeyf("meal '%s' is already in your favorites list", m.Name)
		}
		return domain.Favorite{}, perrs.FromPostgresf(err, "add favorite %d", m.ID)
	}
	logger.C(ctx).Info().Int64("meal_id", m.ID).Str("meal", m.Name).Msg("meal added to favorites")
	return domain.Favorite{Meal: m, AddedAt: at}, nil
}

// Remove takes a meal off the list
func (s *Svc) Remove(ctx context.Context, mealID int64) error {
	if err := s.Repo.Remove(ctx, mealID); err != nil {
		if perrs.IsCode(err, perrs.ErrorCodeNotFound) {
			return perrs.NotFoundf("meal with ID %d is not in your favorites list", mealID)
		}
		return perrs.FromPostgresf(err, "remove favorite %d", mealID)
	}
	logger.C(ctx).Info().Int64("meal_id", mealID).Msg("meal removed from favorites")
	return nil
}

// Clear empties the list
func (s *Svc) Clear(ctx context.Context) error {
	if err := s.Repo.Clear(ctx); err != nil {
		return perrs.FromPostgres(err, "clear favorites")
	}
	logger.C(ctx).Info().Msg("favorites cleared")
	return nil
}

// List returns favorites in the order they were added
func (s *Svc) List(ctx context.Context) ([]domain.Favorite, error) {
	out, err := s.Repo.List(ctx)
	if err != nil {
		return nil, perrs.FromPostgres(err, "list favorites")
	}
	return out, nil
}

// Count returns the number of live favorites
func (s *Svc) Count(ctx context.Context) (int, error) {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, perrs.FromPostgres(err, "count favorites")
	}
	return n, nil
}
