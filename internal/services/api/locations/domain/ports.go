package domain

import (
	"context"
	"encoding/json"
)

// ServicePort is the interface implemented by the locations service
type ServicePort interface {
	Create(ctx context.Context, name string) (Location, error)
	Delete(ctx context.Context, id int64) error
	ByID(ctx context.Context, id int64) (Location, error)
	List(ctx context.Context) ([]Location, error)
	SetFavorite(ctx context.Context, id int64, favorite bool) (Location, error)
	Clear(ctx context.Context) error

	// FavoritesWeather fetches one payload per live favorite location
	FavoritesWeather(ctx context.Context, kind Kind) ([]Report, error)
}

// WeatherPort is the provider seam
type WeatherPort interface {
	Current(ctx context.Context, city string) (json.RawMessage, error)
	Forecast(ctx context.Context, city string) (json.RawMessage, error)
}
