package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingTx struct {
	TxRunner
	err error
}

func (p pingTx) Ping(context.Context) error { return p.err }

type fakeKV struct {
	KeyValue
	pingErr  error
	closeErr error
	closed   bool
}

func (f *fakeKV) Ping(context.Context) error { return f.pingErr }
func (f *fakeKV) Close() error               { f.closed = true; return f.closeErr }

func TestOpen_NothingEnabled(t *testing.T) {
	ctx := context.Background()
	s, err := Open(ctx, Config{AppName: "mealmax-test"})
	require.NoError(t, err)
	assert.Nil(t, s.PG)
	assert.Nil(t, s.RDS)
	assert.NoError(t, s.Guard(ctx))
	assert.NoError(t, s.Close(ctx))
}

func TestOpen_BadPGURL(t *testing.T) {
	s, err := Open(context.Background(), Config{PG: PGConfig{Enabled: true, URL: "://bad"}})
	assert.Error(t, err)
	assert.Nil(t, s)
}

func TestOpen_RedisFailures(t *testing.T) {
	_, err := Open(context.Background(), Config{RDS: RedisConfig{Enabled: true}})
	assert.Error(t, err, "empty addr")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	// nothing listens on port 1
	_, err = Open(ctx, Config{RDS: RedisConfig{Enabled: true, Addr: "127.0.0.1:1"}})
	assert.Error(t, err, "unreachable")
}

func TestGuard(t *testing.T) {
	ctx := context.Background()

	var nilStore *Store
	assert.Error(t, nilStore.Guard(ctx))

	assert.NoError(t, (&Store{PG: pingTx{}, RDS: &fakeKV{}}).Guard(ctx))

	err := (&Store{
		PG:  pingTx{err: errors.New("refused")},
		RDS: &fakeKV{pingErr: errors.New("timeout")},
	}).Guard(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pg: refused")
	assert.Contains(t, err.Error(), "redis: timeout")
}

func TestClose_SurfacesRedisError(t *testing.T) {
	kv := &fakeKV{closeErr: errors.New("close failed")}
	err := (&Store{RDS: kv}).Close(context.Background())
	assert.True(t, kv.closed)
	assert.EqualError(t, err, "close failed")
}
