package domain

import (
	"context"

	"mealmax/internal/core/battle"
)

// ServicePort is the interface implemented by the meals service
type ServicePort interface {
	Create(ctx context.Context, in CreateInput) (Meal, error)
	Delete(ctx context.Context, id int64) error
	ByID(ctx context.Context, id int64) (Meal, error)
	ByName(ctx context.Context, name string) (Meal, error)
	Leaderboard(ctx context.Context, sort LeaderboardSort) ([]LeaderboardEntry, error)
	Clear(ctx context.Context) error

	// UpdateStats records one battle result for a meal
	UpdateStats(ctx context.Context, id int64, r battle.Result) error
}

// LookupPort is the read surface other modules use to resolve meals
type LookupPort interface {
	ByID(ctx context.Context, id int64) (Meal, error)
	ByName(ctx context.Context, name string) (Meal, error)
}
