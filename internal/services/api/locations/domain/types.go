// Package domain holds weather location types
package domain

import (
	"encoding/json"
	"time"
)

// Location is a stored city name with a favorite flag
type Location struct {
	ID        int64     `json:"id"         example:"1"`
	Name      string    `json:"location"   example:"Boston"`
	Favorite  bool      `json:"favorite"   example:"true"`
	Deleted   bool      `json:"-"`
	CreatedAt time.Time `json:"created_at" example:"2026-01-02T15:04:05Z"`
}

// Report pairs a favorite location with the provider payload
// Error is set instead of Payload when the provider does not know the city
type Report struct {
	LocationID int64           `json:"location_id"       example:"1"`
	Location   string          `json:"location"          example:"Boston"`
	Payload    json.RawMessage `json:"payload,omitempty" swaggertype:"object"`
	Error      string          `json:"error,omitempty"   example:"weather for \"Atlantis\" not found"`
}

// Kind selects current conditions or the forecast
type Kind string

const (
	// KindCurrent is the /weather payload
	KindCurrent Kind = "weather"
	// KindForecast is the /forecast payload
	KindForecast Kind = "forecast"
)
