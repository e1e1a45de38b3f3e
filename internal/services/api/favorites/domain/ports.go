package domain

import "context"

// ServicePort is the interface implemented by the favorites service
type ServicePort interface {
	Add(ctx context.Context, mealID int64) (Favorite, error)
	Remove(ctx context.Context, mealID int64) error
	Clear(ctx context.Context) error
	List(ctx context.Context) ([]Favorite, error)
	Count(ctx context.Context) (int, error)
}
