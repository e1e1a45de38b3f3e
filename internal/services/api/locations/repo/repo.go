// Package repo provides the locations repository implementation
package repo

import (
	"context"
	_ "embed"

	"mealmax/internal/modkit/repokit"
	"mealmax/internal/platform/store"
	"mealmax/internal/services/api/locations/domain"
)

// Schema creates the locations table when missing
//
//go:embed schema.sql
var Schema string

// Repo is the locations persistence surface
type Repo interface {
	// Insert stores a display name under its folded key; a taken key is a unique violation
	Insert(ctx context.Context, name, key string) (domain.Location, error)

	// Get returns soft deleted rows too; missing rows are perr.ErrNotFound
	Get(ctx context.Context, id int64) (domain.Location, error)

	// Lock returns the row locked for the rest of the tx
	Lock(ctx context.Context, id int64) (domain.Location, error)
	MarkDeleted(ctx context.Context, id int64) error
	SetFavorite(ctx context.Context, id int64, favorite bool) (domain.Location, error)

	// List and Favorites skip soft deleted rows
	List(ctx context.Context) ([]domain.Location, error)
	Favorites(ctx context.Context) ([]domain.Location, error)

	Reset(ctx context.Context) error
}

type (
	// PG is a Postgres implementation of the locations repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const cols = `id, location, favorite, deleted, created_at`

func scanLocation(r store.Row) (domain.Location, error) {
	var l domain.Location
	err := r.Scan(&l.ID, &l.Name, &l.Favorite, &l.Deleted, &l.CreatedAt)
	return l, err
}

func (r *queries) Insert(ctx context.Context, name, key string) (domain.Location, error) {
	const sql = `INSERT INTO locations (location, location_key) VALUES ($1, $2) RETURNING ` + cols
	return store.One(ctx, r.q, scanLocation, sql, name, key)
}

func (r *queries) Get(ctx context.Context, id int64) (domain.Location, error) {
	const sql = `SELECT ` + cols + ` FROM locations WHERE id = $1`
	return store.One(ctx, r.q, scanLocation, sql, id)
}

func (r *queries) Lock(ctx context.Context, id int64) (domain.Location, error) {
	const sql = `SELECT ` + cols + ` FROM locations WHERE id = $1 FOR UPDATE`
	return store.One(ctx, r.q, scanLocation, sql, id)
}

func (r *queries) MarkDeleted(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `UPDATE locations SET deleted = TRUE, favorite = FALSE WHERE id = $1`, id)
	return err
}

func (r *queries) SetFavorite(ctx context.Context, id int64, favorite bool) (domain.Location, error) {
	const sql = `UPDATE locations SET favorite = $2 WHERE id = $1 RETURNING ` + cols
	return store.One(ctx, r.q, scanLocation, sql, id, favorite)
}

func (r *queries) List(ctx context.Context) ([]domain.Location, error) {
	const sql = `SELECT ` + cols + ` FROM locations WHERE deleted = FALSE ORDER BY id`
	return many(ctx, r.q, sql)
}

func (r *queries) Favorites(ctx context.Context) ([]domain.Location, error) {
	const sql = `SELECT ` + cols + ` FROM locations WHERE favorite AND deleted = FALSE ORDER BY id`
	return many(ctx, r.q, sql)
}

func (r *queries) Reset(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `DROP TABLE IF EXISTS locations`); err != nil {
		return err
	}
	_, err := r.q.Exec(ctx, Schema)
	return err
}

func many(ctx context.Context, q repokit.Queryer, sql string) ([]domain.Location, error) {
	out, err := store.Many(ctx, q, scanLocation, sql)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.Location{}
	}
	return out, nil
}
