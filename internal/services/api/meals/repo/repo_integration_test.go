//go:build integration_pg

package repo_test

import (
	"context"
	"testing"

	"mealmax/internal/core/battle"
	"mealmax/internal/modkit/repokit"
	perr "mealmax/internal/platform/errors"
	"mealmax/internal/platform/testkit"
	"mealmax/internal/services/api/meals/domain"
	"mealmax/internal/services/api/meals/repo"
)

func TestMealsRepo_Integration(t *testing.T) {
	st := testkit.PostgresStore(t)
	ctx := context.Background()

	if _, err := st.PG.Exec(ctx, repo.Schema); err != nil {
		t.Fatalf("schema: %v", err)
	}
	r := repo.NewPG().Bind(st.PG)

	a, err := r.Insert(ctx, "Spaghetti", "Italian", 10, battle.DifficultyMed)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	b, err := r.Insert(ctx, "Dumplings", "Chinese", 15, battle.DifficultyLow)
	if err != nil {
		t.Fatalf("insert: %v", err)
	}
	if a.ID != 1 || b.ID != 2 || a.Battles != 0 || a.Deleted {
		t.Fatalf("unexpected rows a=%+v b=%+v", a, b)
	}

	if _, err := r.Insert(ctx, "Spaghetti", "Italian", 12, battle.DifficultyLow); !perr.IsDuplicateKey(err) {
		t.Fatalf("duplicate insert err = %v", err)
	}
	if _, err := r.Insert(ctx, "Broth", "None", 0, battle.DifficultyLow); !perr.IsCheckViolation(err) {
		t.Fatalf("zero price err = %v", err)
	}

	got, err := r.GetByName(ctx, "Dumplings")
	if err != nil || got.ID != b.ID || got.Difficulty != battle.DifficultyLow {
		t.Fatalf("GetByName = %+v, %v", got, err)
	}
	if _, err := r.Get(ctx, 99); err != perr.ErrNotFound {
		t.Fatalf("Get missing err = %v", err)
	}

	// b wins twice, a loses twice and wins once
	for _, step := range []struct {
		id  int64
		won bool
	}{{a.ID, false}, {b.ID, true}, {a.ID, false}, {b.ID, true}, {a.ID, true}} {
		if err := r.AddBattle(ctx, step.id, step.won); err != nil {
			t.Fatalf("AddBattle: %v", err)
		}
	}

	lb, err := r.Leaderboard(ctx, domain.SortWins)
	if err != nil || len(lb) != 2 {
		t.Fatalf("Leaderboard = %+v, %v", lb, err)
	}
	if lb[0].ID != b.ID || lb[0].WinPct != 100 || lb[1].WinPct != 33.3 {
		t.Fatalf("Leaderboard order/pct = %+v", lb)
	}

	err = st.PG.Tx(ctx, func(q repokit.Queryer) error {
		tr := repo.NewPG().Bind(q)
		deleted, err := tr.Deleted(ctx, b.ID)
		if err != nil || deleted {
			t.Fatalf("Deleted = %v, %v", deleted, err)
		}
		return tr.MarkDeleted(ctx, b.ID)
	})
	if err != nil {
		t.Fatalf("tx: %v", err)
	}
	lb, _ = r.Leaderboard(ctx, domain.SortWinPct)
	if len(lb) != 1 || lb[0].ID != a.ID {
		t.Fatalf("Leaderboard after delete = %+v", lb)
	}

	if err := r.Reset(ctx); err != nil {
		t.Fatalf("Reset: %v", err)
	}
	c, err := r.Insert(ctx, "Tacos", "Mexican", 8, battle.DifficultyHigh)
	if err != nil || c.ID != 3 {
		t.Fatalf("insert after reset = %+v, %v", c, err)
	}
	if _, err := r.Get(ctx, a.ID); err != perr.ErrNotFound {
		t.Fatalf("Get cleared meal err = %v", err)
	}
}
