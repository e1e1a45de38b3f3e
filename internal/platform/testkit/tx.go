package testkit

import (
	"context"
	"errors"

	"mealmax/internal/platform/store"
)

// ErrNoSQL is returned by NopTx for any direct SQL call
var ErrNoSQL = errors.New("testkit: NopTx does not run SQL")

// NopTx is a store.TxRunner for service tests whose repos are fakes bound by a BindFunc
// Tx runs fn inline and counts calls; Exec, Query and QueryRow refuse to run SQL
type NopTx struct {
	Calls int
	Err   error
}

var _ store.TxRunner = (*NopTx)(nil)

// Tx calls fn with the NopTx itself as the Queryer; Err, when set, is returned instead of calling fn
func (n *NopTx) Tx(_ context.Context, fn func(q store.RowQuerier) error) error {
	n.Calls++
	if n.Err != nil {
		return n.Err
	}
	return fn(n)
}

// Exec always fails with ErrNoSQL
func (n *NopTx) Exec(context.Context, string, ...any) (store.CommandTag, error) {
	return nil, ErrNoSQL
}

// Query always fails with ErrNoSQL
func (n *NopTx) Query(context.Context, string, ...any) (store.Rows, error) {
	return nil, ErrNoSQL
}

// QueryRow returns a row whose Scan fails with ErrNoSQL
func (n *NopTx) QueryRow(context.Context, string, ...any) store.Row { return errRow{} }

type errRow struct{}

func (errRow) Scan(...any) error { return ErrNoSQL }
