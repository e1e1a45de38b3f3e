package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"mealmax/internal/core/battle"
	"mealmax/internal/platform/store"
)

const (
	keyPrefix       = "mealmax:battle:"
	defaultLockTTL  = 30 * time.Second
	defaultLockWait = 5 * time.Second
	lockPoll        = 25 * time.Millisecond
)

// ErrBusy is returned when the session lock could not be taken in time
var ErrBusy = errors.New("battle session is busy")

// Redis keeps each session as a JSON list under mealmax:battle:<id>
// Update holds a SetNX lock on mealmax:battle:<id>:lock for the load-mutate-save cycle
type Redis struct {
	kv       store.KeyValue
	ttl      time.Duration
	lockTTL  time.Duration
	lockWait time.Duration
	token    func() string
}

var _ Sessions = (*Redis)(nil)

// NewRedis returns a session store over kv
func NewRedis(kv store.KeyValue, ttl time.Duration) *Redis {
	if kv == nil {
		panic("battle sessions require a non nil KeyValue")
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Redis{
		kv:       kv,
		ttl:      ttl,
		lockTTL:  defaultLockTTL,
		lockWait: defaultLockWait,
		token:    uuid.NewString,
	}
}

func key(id string) string     { return keyPrefix + id }
func lockKey(id string) string { return keyPrefix + id + ":lock" }

// Create stores an empty session
func (r *Redis) Create(ctx context.Context, id string) error {
	ok, err := r.kv.SetNX(ctx, key(id), []byte("[]"), r.ttl)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("battle session %s already exists", id)
	}
	return nil
}

// View returns the staged combatants
func (r *Redis) View(ctx context.Context, id string) ([]battle.Combatant, error) {
	return r.load(ctx, id)
}

// Update runs fn while holding the session lock and saves on success
func (r *Redis) Update(ctx context.Context, id string, fn func(*battle.Registry) error) error {
	token, err := r.lock(ctx, id)
	if err != nil {
		return err
	}
	defer r.unlock(ctx, id, token)

	staged, err := r.load(ctx, id)
	if err != nil {
		return err
	}
	reg, err := battle.NewRegistry(staged...)
	if err != nil {
		return err
	}
	if err := fn(reg); err != nil {
		return err
	}
	b, err := json.Marshal(reg.List())
	if err != nil {
		return err
	}
	return r.kv.Set(ctx, key(id), b, r.ttl)
}

// Drop deletes a session under the session lock so an in-flight Update cannot save it back
func (r *Redis) Drop(ctx context.Context, id string) error {
	token, err := r.lock(ctx, id)
	if err != nil {
		return err
	}
	defer r.unlock(ctx, id, token)

	n, err := r.kv.Del(ctx, key(id))
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNoSession
	}
	return nil
}

func (r *Redis) load(ctx context.Context, id string) ([]battle.Combatant, error) {
	b, err := r.kv.Get(ctx, key(id))
	if errors.Is(err, store.ErrKeyMissing) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, err
	}
	out := []battle.Combatant{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, fmt.Errorf("decode battle session %s: %w", id, err)
	}
	return out, nil
}

func (r *Redis) unlock(ctx context.Context, id, token string) {
	_, _ = r.kv.DelIfEqual(context.WithoutCancel(ctx), lockKey(id), []byte(token))
}

func (r *Redis) lock(ctx context.Context, id string) (string, error) {
	token := r.token()
	deadline := time.Now().Add(r.lockWait)
	for {
		ok, err := r.kv.SetNX(ctx, lockKey(id), []byte(token), r.lockTTL)
		if err != nil {
			return "", err
		}
		if ok {
			return token, nil
		}
		if time.Now().After(deadline) {
			return "", ErrBusy
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(lockPoll):
		}
	}
}
