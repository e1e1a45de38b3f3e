package domain

import (
	"context"

	"mealmax/internal/core/battle"
)

// ServicePort is the interface implemented by the battle service
type ServicePort interface {
	Open(ctx context.Context) (Session, error)
	Stage(ctx context.Context, sid, meal string) (Session, error)
	Combatants(ctx context.Context, sid string) ([]battle.Combatant, error)
	ClearCombatants(ctx context.Context, sid string) error
	Resolve(ctx context.Context, sid string) (Result, error)
	Drop(ctx context.Context, sid string) error
}
