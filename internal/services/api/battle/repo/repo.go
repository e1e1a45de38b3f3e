// Package repo stores battle sessions in memory or in redis
package repo

import (
	"context"
	"errors"
	"time"

	"mealmax/internal/core/battle"
)

// DefaultTTL is how long an untouched session lives
const DefaultTTL = 30 * time.Minute

// ErrNoSession is returned for unknown or expired sessions
var ErrNoSession = errors.New("battle session not found")

// Sessions owns the staged combatants of every open session
// Update serializes callers per session: fn sees the current registry and
// its mutations are saved only when fn returns nil
type Sessions interface {
	Create(ctx context.Context, id string) error
	View(ctx context.Context, id string) ([]battle.Combatant, error)
	Update(ctx context.Context, id string, fn func(*battle.Registry) error) error
	Drop(ctx context.Context, id string) error
}
