// Package battle implements the meal contest engine
// A session stages two combatants in a Registry, the Engine scores them, draws a random value,
// records the outcome through a StatsSink and keeps the winner staged for the next round
package battle

import (
	"fmt"
	"strings"
)

// Difficulty is the preparation tier of a meal
type Difficulty string

const (
	// DifficultyLow is the easiest tier and the strongest contest entry
	DifficultyLow Difficulty = "LOW"
	// DifficultyMed is the middle tier
	DifficultyMed Difficulty = "MED"
	// DifficultyHigh is the hardest tier and the weakest contest entry
	DifficultyHigh Difficulty = "HIGH"
)

// Valid reports whether d is one of the known tiers
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyLow, DifficultyMed, DifficultyHigh:
		return true
	}
	return false
}

// ParseDifficulty accepts low, med, medium and high in any case
func ParseDifficulty(s string) (Difficulty, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return DifficultyLow, nil
	case "MED", "MEDIUM":
		return DifficultyMed, nil
	case "HIGH":
		return DifficultyHigh, nil
	}
	return "", fmt.Errorf("battle: invalid difficulty %q, expected LOW, MED or HIGH", s)
}

// Combatant is a fully populated catalog entry eligible for a contest
// Values compare with ==; membership in a Registry is decided by ID
type Combatant struct {
	ID         int64      `json:"id"`
	Name       string     `json:"meal"`
	Category   string     `json:"cuisine"`
	Price      float64    `json:"price"`
	Difficulty Difficulty `json:"difficulty"`
}

// Result is the outcome recorded for one combatant after a resolution
type Result string

const (
	// ResultWin marks the winner
	ResultWin Result = "win"
	// ResultLoss marks the loser
	ResultLoss Result = "loss"
)

// Outcome is the transient record of one resolution
type Outcome struct {
	Winner      Combatant `json:"winner"`
	Loser       Combatant `json:"loser"`
	WinnerScore float64   `json:"winner_score"`
	LoserScore  float64   `json:"loser_score"`
	Draw        float64   `json:"draw"`
	// Upset is true when the lower scoring combatant won
	Upset bool `json:"upset"`
}
