package battle

import (
	"errors"
	"fmt"
)

var (
	// ErrCapacity is returned when staging into a full registry
	ErrCapacity = errors.New("combatant list is full, cannot add more combatants")

	// ErrDuplicate is returned when the combatant is already staged
	ErrDuplicate = errors.New("combatant is already staged")

	// ErrPrecondition is returned when resolving without exactly two staged combatants
	ErrPrecondition = errors.New("two combatants required")
)

// RandomnessError reports a failed or out of range draw
type RandomnessError struct {
	Value float64
	Err   error
}

func (e *RandomnessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("random draw failed: %v", e.Err)
	}
	return fmt.Sprintf("random draw %v outside [0, 1)", e.Value)
}

func (e *RandomnessError) Unwrap() error { return e.Err }

// PersistenceError reports a failed stats sink call
// The sequence stops at the failed call, so ID tells the caller which record is missing
type PersistenceError struct {
	ID      int64
	Outcome Result
	Err     error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("record %s for combatant %d: %v", e.Outcome, e.ID, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
