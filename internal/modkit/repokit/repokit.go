// Package repokit is the seam between services and their SQL repos
// repos are bound to a Queryer so the same code runs on the pool or inside a tx
package repokit

import (
	"context"

	"mealmax/internal/platform/store"
)

type (
	// Queryer is the read and write surface a repo is bound to
	Queryer = store.RowQuerier

	// TxRunner is a Queryer that can also open a transaction
	TxRunner = store.TxRunner
)

// Binder binds a repo to a Queryer
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc adapts a func to a Binder
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// InTx runs fn in one transaction with a repo bound to the tx
func InTx[T any](ctx context.Context, db TxRunner, b Binder[T], fn func(T) error) error {
	return db.Tx(ctx, func(q Queryer) error {
		return fn(b.Bind(q))
	})
}
