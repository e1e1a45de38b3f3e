// Package repo provides the meals repository implementation
package repo

import (
	"context"
	_ "embed"

	"mealmax/internal/core/battle"
	"mealmax/internal/modkit/repokit"
	"mealmax/internal/platform/store"
	"mealmax/internal/services/api/meals/domain"
)

// Schema creates the meals table when missing
//
//go:embed schema.sql
var Schema string

// Repo is the meals persistence surface used by the service layer
type Repo interface {
	Insert(ctx context.Context, name, cuisine string, price float64, d battle.Difficulty) (domain.Meal, error)

	// Get returns the row even when soft deleted; missing rows are perr.ErrNotFound
	Get(ctx context.Context, id int64) (domain.Meal, error)
	GetByName(ctx context.Context, name string) (domain.Meal, error)

	// Deleted locks the row for the rest of the tx and reports its soft delete flag
	Deleted(ctx context.Context, id int64) (bool, error)
	MarkDeleted(ctx context.Context, id int64) error
	AddBattle(ctx context.Context, id int64, won bool) error

	Leaderboard(ctx context.Context, sort domain.LeaderboardSort) ([]domain.LeaderboardEntry, error)

	// Reset empties the catalog; ids keep counting so stale favorites and staged combatants never match a new meal
	Reset(ctx context.Context) error
}

type (
	// PG is a Postgres implementation of the meals repo
	PG      struct{}
	queries struct{ q repokit.Queryer }
)

// NewPG returns a binder for the Postgres implementation
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind attaches a Queryer to the Postgres implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const cols = `id, meal, cuisine, price, difficulty, battles, wins, deleted`

func scanMeal(r store.Row) (domain.Meal, error) {
	var m domain.Meal
	var d string
	err := r.Scan(&m.ID, &m.Name, &m.Cuisine, &m.Price, &d, &m.Battles, &m.Wins, &m.Deleted)
	m.Difficulty = battle.Difficulty(d)
	return m, err
}

func (r *queries) Insert(ctx context.Context, name, cuisine string, price float64, d battle.Difficulty) (domain.Meal, error) {
	const sql = `
		INSERT INTO meals (meal, cuisine, price, difficulty)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + cols
	return store.One(ctx, r.q, scanMeal, sql, name, cuisine, price, string(d))
}

func (r *queries) Get(ctx context.Context, id int64) (domain.Meal, error) {
	const sql = `SELECT ` + cols + ` FROM meals WHERE id = $1`
	return store.One(ctx, r.q, scanMeal, sql, id)
}

func (r *queries) GetByName(ctx context.Context, name string) (domain.Meal, error) {
	const sql = `SELECT ` + cols + ` FROM meals WHERE meal = $1`
	return store.One(ctx, r.q, scanMeal, sql, name)
}

func (r *queries) Deleted(ctx context.Context, id int64) (bool, error) {
	const sql = `SELECT deleted FROM meals WHERE id = $1 FOR UPDATE`
	return store.One(ctx, r.q, func(row store.Row) (bool, error) {
		var deleted bool
		err := row.Scan(&deleted)
		return deleted, err
	}, sql, id)
}

func (r *queries) MarkDeleted(ctx context.Context, id int64) error {
	_, err := r.q.Exec(ctx, `UPDATE meals SET deleted = TRUE WHERE id = $1`, id)
	return err
}

func (r *queries) AddBattle(ctx context.Context, id int64, won bool) error {
	const sql = `
		UPDATE meals
		SET battles = battles + 1,
		    wins    = wins + CASE WHEN $2 THEN 1 ELSE 0 END
		WHERE id = $1
	`
	_, err := r.q.Exec(ctx, sql, id, won)
	return err
}

func (r *queries) Leaderboard(ctx context.Context, sort domain.LeaderboardSort) ([]domain.LeaderboardEntry, error) {
	order := `wins DESC, id ASC`
	if sort == domain.SortWinPct {
		order = `win_pct DESC, wins DESC, id ASC`
	}
	sql := `
		SELECT ` + cols + `, ROUND((wins * 100.0 / battles)::numeric, 1)::float8 AS win_pct
		FROM meals
		WHERE deleted = FALSE AND battles > 0
		ORDER BY ` + order
	out, err := store.Many(ctx, r.q, func(row store.Row) (domain.LeaderboardEntry, error) {
		var e domain.LeaderboardEntry
		var d string
		err := row.Scan(&e.ID, &e.Name, &e.Cuisine, &e.Price, &d, &e.Battles, &e.Wins, &e.Deleted, &e.WinPct)
		e.Difficulty = battle.Difficulty(d)
		return e, err
	}, sql)
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []domain.LeaderboardEntry{}
	}
	return out, nil
}

func (r *queries) Reset(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, Schema); err != nil {
		return err
	}
	_, err := r.q.Exec(ctx, `TRUNCATE meals CONTINUE IDENTITY`)
	return err
}
