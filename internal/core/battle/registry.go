package battle

// Capacity is the number of combatants a contest needs
const Capacity = 2

// Registry holds the combatants staged for one contest session
// It is not safe for concurrent use; each session owns its own Registry
type Registry struct {
	staged []Combatant
}

// NewRegistry returns an empty registry, optionally pre-staged with cs
// Pre-staging goes through Stage so capacity and duplicate rules still hold
func NewRegistry(cs ...Combatant) (*Registry, error) {
	r := &Registry{staged: make([]Combatant, 0, Capacity)}
	for _, c := range cs {
		if err := r.Stage(c); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Stage appends c in insertion order
// A full registry always fails with ErrCapacity; otherwise a combatant whose ID is already staged fails with ErrDuplicate
func (r *Registry) Stage(c Combatant) error {
	if len(r.staged) >= Capacity {
		return ErrCapacity
	}
	if r.Contains(c.ID) {
		return ErrDuplicate
	}
	r.staged = append(r.staged, c)
	return nil
}

// Clear empties the registry
func (r *Registry) Clear() { r.staged = r.staged[:0] }

// List returns a copy of the staged combatants in insertion order
func (r *Registry) List() []Combatant {
	out := make([]Combatant, len(r.staged))
	copy(out, r.staged)
	return out
}

// Count returns the number of staged combatants
func (r *Registry) Count() int { return len(r.staged) }

// Contains reports whether a combatant with id is staged
func (r *Registry) Contains(id int64) bool {
	for _, c := range r.staged {
		if c.ID == id {
			return true
		}
	}
	return false
}

// remove drops the first staged combatant with id, preserving the order of the rest
func (r *Registry) remove(id int64) {
	for i, c := range r.staged {
		if c.ID == id {
			r.staged = append(r.staged[:i], r.staged[i+1:]...)
			return
		}
	}
}
