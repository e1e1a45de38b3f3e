// Package domain holds favorite meal types
package domain

import (
	"time"

	mealsdomain "mealmax/internal/services/api/meals/domain"
)

// Favorite is a live catalog meal on the favorites list
type Favorite struct {
	mealsdomain.Meal
	AddedAt time.Time `json:"added_at" example:"2026-01-02T15:04:05Z"`
}

// AddInput names the meal to favorite
type AddInput struct {
	MealID int64 `json:"meal_id" validate:"required,gt=0" example:"1"`
}

// CountOutput is the size of the favorites list
type CountOutput struct {
	Count int `json:"count" example:"3"`
}

// RemoveOutput confirms a removal
type RemoveOutput struct {
	MealID  int64 `json:"meal_id" example:"1"`
	Removed bool  `json:"removed" example:"true"`
}

// ClearOutput confirms the list was emptied
type ClearOutput struct {
	Cleared bool `json:"cleared" example:"true"`
}
