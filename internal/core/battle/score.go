package battle

import "unicode/utf8"

// Penalty is subtracted from the base magnitude; harder tiers are weaker entries
func Penalty(d Difficulty) float64 {
	switch d {
	case DifficultyLow:
		return 1
	case DifficultyMed:
		return 2
	case DifficultyHigh:
		return 3
	}
	return 0
}

// Score is price times the letter count of the cuisine minus the difficulty penalty
// No clamping or rounding is applied
func Score(c Combatant) float64 {
	return c.Price*float64(utf8.RuneCountInString(c.Category)) - Penalty(c.Difficulty)
}
