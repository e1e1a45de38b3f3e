package repokit_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealmax/internal/modkit/repokit"
	"mealmax/internal/platform/testkit"
)

type mealRepo struct{ q repokit.Queryer }

func TestInTx_BindsRepoToTx(t *testing.T) {
	tx := &testkit.NopTx{}
	b := repokit.BindFunc[mealRepo](func(q repokit.Queryer) mealRepo { return mealRepo{q: q} })

	var got mealRepo
	require.NoError(t, repokit.InTx(context.Background(), tx, b, func(r mealRepo) error {
		got = r
		return nil
	}))
	assert.Equal(t, 1, tx.Calls)
	assert.Same(t, tx, got.q)
}

func TestInTx_PropagatesErrors(t *testing.T) {
	b := repokit.BindFunc[mealRepo](func(q repokit.Queryer) mealRepo { return mealRepo{q: q} })
	stop := errors.New("meal 4 is deleted")

	err := repokit.InTx(context.Background(), &testkit.NopTx{}, b, func(mealRepo) error { return stop })
	assert.ErrorIs(t, err, stop)

	begin := errors.New("begin failed")
	err = repokit.InTx(context.Background(), &testkit.NopTx{Err: begin}, b, func(mealRepo) error {
		t.Fatal("fn must not run when the tx fails to open")
		return nil
	})
	assert.ErrorIs(t, err, begin)
}
