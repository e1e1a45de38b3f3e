package store

import (
	"context"
	"errors"
	"time"

	"mealmax/internal/platform/store/rds"

	"github.com/redis/go-redis/v9"
)

// ErrKeyMissing is returned by KeyValue.Get when the key does not exist or expired
var ErrKeyMissing = errors.New("store: key missing")

// delIfEqual releases a lock only when the caller still owns it
var delIfEqual = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// NewKeyValue wraps an existing go-redis client as the store.KeyValue seam
func NewKeyValue(c *redis.Client) KeyValue {
	return &redisAdapter{c: c}
}

func newRDSAdapter(r *rds.RDS) KeyValue {
	return &redisAdapter{c: r.Client}
}

// redisAdapter adapts *redis.Client to the store.KeyValue interface
type redisAdapter struct {
	c *redis.Client
}

var _ KeyValue = (*redisAdapter)(nil)

func (a *redisAdapter) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := a.c.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrKeyMissing
	}
	return b, err
}

func (a *redisAdapter) Set(ctx context.Context, key string, val []byte, ttl time.Duration) error {
	return a.c.Set(ctx, key, val, ttl).Err()
}

func (a *redisAdapter) SetNX(ctx context.Context, key string, val []byte, ttl time.Duration) (bool, error) {
	return a.c.SetNX(ctx, key, val, ttl).Result()
}

func (a *redisAdapter) Del(ctx context.Context, keys ...string) (int64, error) {
	return a.c.Del(ctx, keys...).Result()
}

func (a *redisAdapter) DelIfEqual(ctx context.Context, key string, val []byte) (bool, error) {
	n, err := delIfEqual.Run(ctx, a.c, []string{key}, val).Int64()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

// Ping verifies connectivity with redis
func (a *redisAdapter) Ping(ctx context.Context) error {
	if a == nil || a.c == nil {
		return errors.New("store: nil redis adapter")
	}
	return a.c.Ping(ctx).Err()
}

func (a *redisAdapter) Close() error { return a.c.Close() }
