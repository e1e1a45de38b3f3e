// Package repo provides the favorites repository implementation
package repo

import (
	"context"
	_ "embed"
	"time"

	"mealmax/internal/core/battle"
	"mealmax/internal/modkit/repokit"
	perr "mealmax/internal/platform/errors"
	"mealmax/internal/platform/store"
	"mealmax/internal/services/api/favorites/domain"
)

// Schema creates the favorites table when missing
//
//go:embed schema.sql
var Schema string

// Repo is the favorites persistence surface
type Repo interface {
	// Add returns the insert time; an existing row is a unique violation
	Add(ctx context.Context, mealID int64) (time.Time, error)

	// Remove returns perr.ErrNotFound when the meal was not a favorite
	Remove(ctx context.Context, mealID int64) error
	Clear(ctx context.Context) error

	// List and Count only see favorites whose meal is live
	List(ctx context.Context) ([]domain.Favorite, error)
	Count(ctx context.Context) (int, error)
}

type (
	// PG is a Postgres implementation of the favorites repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) Add(ctx context.Context, mealID int64) (time.Time, error) {
	const sql = `INSERT INTO favorites (meal_id) VALUES ($1) RETURNING added_at`
	return store.One(ctx, r.q, func(row store.Row) (time.Time, error) {
		var at time.Time
		err := row.Scan(&at)
		return at, err
	}, sql, mealID)
}

func (r *queries) Remove(ctx context.Context, mealID int64) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM favorites WHERE meal_id = $1`, mealID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return perr.ErrNotFound
	}
	return nil
}

func (r *queries) Clear(ctx context.Context) error {
	_, err := r.q.Exec(ctx, `DELETE FROM favorites`)
	return err
}

func (r *queries) List(ctx context.Context) ([]domain.Favorite, error) {
	const sql = `
		SELECT m.id, m.meal, m.cuisine, m.price, m.difficulty, m.battles, m.wins, f.added_at
		FROM favorites f
		JOIN meals m ON m.id = f.meal_id
		WHERE m.deleted = FALSE
		ORDER BY f.added_at ASC, m.id ASC
	`
	out, err := store.Many(ctx, r.q, func(row store.Row) (domain.Favorite, error) {
		var f domain.Favorite
		var d string
		err := row.Scan(&f.ID, &f.Name, &f.Cuisine, &f.Price, &d, &f.Battles, &f.Wins, &f.AddedAt)
		f.Difficulty = battle.Difficulty(d)
		return f, err
	}, sql)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Favorite{}
	}
	return out, nil
}

func (r *queries) Count(ctx context.Context) (int, error) {
	const sql = `
		SELECT COUNT(*)
		FROM favorites f
		JOIN meals m ON m.id = f.meal_id
		WHERE m.deleted = FALSE
	`
	return store.One(ctx, r.q, func(row store.Row) (int, error) {
		var n int
		err := row.Scan(&n)
		return n, err
	}, sql)
}
