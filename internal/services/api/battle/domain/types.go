// Package domain holds battle session types independent of transport or storage
package domain

import "mealmax/internal/core/battle"

// Session is one contest session and its staged combatants
type Session struct {
	ID         string             `json:"id"         example:"0b6f4c52-7f0e-4c55-9a8e-3d3b8f0b8e11"`
	Combatants []battle.Combatant `json:"combatants"`
}

// Result is the resolution payload returned to callers
type Result struct {
	Winner      string  `json:"winner"       example:"Dumplings"`
	Loser       string  `json:"loser"        example:"Spaghetti"`
	WinnerScore float64 `json:"winner_score" example:"104"`
	LoserScore  float64 `json:"loser_score"  example:"68"`
	Draw        float64 `json:"draw"         example:"0.9"`
	Upset       bool    `json:"upset"        example:"false"`
}

// ResultFrom projects an engine outcome
func ResultFrom(o battle.Outcome) Result {
	return Result{
		Winner:      o.Winner.Name,
		Loser:       o.Loser.Name,
		WinnerScore: o.WinnerScore,
		LoserScore:  o.LoserScore,
		Draw:        o.Draw,
		Upset:       o.Upset,
	}
}
