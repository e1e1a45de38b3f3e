// Package domain holds meal catalog types independent of transport or storage
package domain

import "mealmax/internal/core/battle"

// Meal is a catalog row
type Meal struct {
	ID         int64             `json:"id"         example:"1"`
	Name       string            `json:"meal"       example:"Spaghetti"`
	Cuisine    string            `json:"cuisine"    example:"Italian"`
	Price      float64           `json:"price"      example:"10"`
	Difficulty battle.Difficulty `json:"difficulty" example:"MED"`
	Battles    int               `json:"battles"    example:"4"`
	Wins       int               `json:"wins"       example:"3"`
	Deleted    bool              `json:"-"`
}

// Combatant projects the meal into the contest engine
func (m Meal) Combatant() battle.Combatant {
	return battle.Combatant{
		ID:         m.ID,
		Name:       m.Name,
		Category:   m.Cuisine,
		Price:      m.Price,
		Difficulty: m.Difficulty,
	}
}

// LeaderboardSort is the ranking key for the leaderboard
type LeaderboardSort string

const (
	// SortWins ranks by total wins
	SortWins LeaderboardSort = "wins"

	// SortWinPct ranks by win percentage
	SortWinPct LeaderboardSort = "win_pct"
)

// LeaderboardEntry is a meal with at least one battle and its win percentage
type LeaderboardEntry struct {
	Meal
	// WinPct is wins/battles*100 rounded to one decimal
	WinPct float64 `json:"win_pct" example:"75"`
}
