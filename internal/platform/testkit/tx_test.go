package testkit

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealmax/internal/platform/store"
)

func TestNopTx(t *testing.T) {
	ctx := context.Background()
	tx := &NopTx{}

	var inner store.RowQuerier
	require.NoError(t, tx.Tx(ctx, func(q store.RowQuerier) error {
		inner = q
		return nil
	}))
	assert.Equal(t, 1, tx.Calls)
	assert.Same(t, tx, inner)

	_, err := tx.Exec(ctx, "DELETE FROM meals")
	assert.ErrorIs(t, err, ErrNoSQL)
	_, err = tx.Query(ctx, "SELECT 1")
	assert.ErrorIs(t, err, ErrNoSQL)
	assert.ErrorIs(t, tx.QueryRow(ctx, "SELECT 1").Scan(), ErrNoSQL)

	boom := errors.New("tx refused")
	tx.Err = boom
	called := false
	assert.ErrorIs(t, tx.Tx(ctx, func(store.RowQuerier) error { called = true; return nil }), boom)
	assert.False(t, called)
	assert.Equal(t, 2, tx.Calls)
}

func TestMustPanic(t *testing.T) {
	MustPanic(t, func() { panic("meal not found") })
}
