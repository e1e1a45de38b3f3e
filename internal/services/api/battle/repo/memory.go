package repo

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"mealmax/internal/core/battle"
)

type memSession struct {
	mu      sync.Mutex
	staged  []battle.Combatant
	expires atomic.Int64 // unix nanos
}

func (s *memSession) touch(at time.Time) { s.expires.Store(at.UnixNano()) }

func (s *memSession) expired(now time.Time) bool { return now.UnixNano() > s.expires.Load() }

// Memory keeps sessions in process; sessions expire lazily after ttl without use
type Memory struct {
	mu   sync.Mutex
	ttl  time.Duration
	now  func() time.Time
	byID map[string]*memSession
}

var _ Sessions = (*Memory)(nil)

// NewMemory returns an empty in-process session store
func NewMemory(ttl time.Duration) *Memory {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Memory{ttl: ttl, now: time.Now, byID: map[string]*memSession{}}
}

// Create registers an empty session
func (m *Memory) Create(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sweep()
	s := &memSession{}
	s.touch(m.now().Add(m.ttl))
	m.byID[id] = s
	return nil
}

// View returns a copy of the staged combatants
func (m *Memory) View(_ context.Context, id string) ([]battle.Combatant, error) {
	s, err := m.get(id)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]battle.Combatant{}, s.staged...), nil
}

// Update runs fn under the session lock
func (m *Memory) Update(_ context.Context, id string, fn func(*battle.Registry) error) error {
	s, err := m.get(id)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	reg, err := battle.NewRegistry(s.staged...)
	if err != nil {
		return err
	}
	if err := fn(reg); err != nil {
		return err
	}
	s.staged = reg.List()
	s.touch(m.now().Add(m.ttl))
	return nil
}

// Drop forgets a session
func (m *Memory) Drop(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.byID[id]; !ok {
		return ErrNoSession
	}
	delete(m.byID, id)
	return nil
}

func (m *Memory) get(id string) (*memSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.byID[id]
	if !ok {
		return nil, ErrNoSession
	}
	if s.expired(m.now()) {
		delete(m.byID, id)
		return nil, ErrNoSession
	}
	return s, nil
}

// sweep drops expired sessions; caller holds m.mu
func (m *Memory) sweep() {
	now := m.now()
	for id, s := range m.byID {
		if s.expired(now) {
			delete(m.byID, id)
		}
	}
}
