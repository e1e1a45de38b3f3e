package service_test

import (
	"context"
	"sort"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealmax/internal/core/battle"
	"mealmax/internal/modkit/repokit"
	perrs "mealmax/internal/platform/errors"
	"mealmax/internal/platform/testkit"
	"mealmax/internal/services/api/meals/domain"
	"mealmax/internal/services/api/meals/repo"
	"mealmax/internal/services/api/meals/service"
)

// memRepo is an in-memory repo.Repo
type memRepo struct {
	rows   map[int64]*domain.Meal
	nextID int64
	sorts  []domain.LeaderboardSort
	resets int
}

func newMemRepo() *memRepo { return &memRepo{rows: map[int64]*domain.Meal{}} }

func (m *memRepo) Insert(_ context.Context, name, cuisine string, price float64, d battle.Difficulty) (domain.Meal, error) {
	for _, r := range m.rows {
		if r.Name == name {
			return domain.Meal{}, &pgconn.PgError{Code: "23505", ConstraintName: "meals_meal_key"}
		}
	}
	m.nextID++
	row := &domain.Meal{ID: m.nextID, Name: name, Cuisine: cuisine, Price: price, Difficulty: d}
	m.rows[row.ID] = row
	return *row, nil
}

func (m *memRepo) Get(_ context.Context, id int64) (domain.Meal, error) {
	r, ok := m.rows[id]
	if !ok {
		return domain.Meal{}, perrs.ErrNotFound
	}
	return *r, nil
}

func (m *memRepo) GetByName(_ context.Context, name string) (domain.Meal, error) {
	for _, r := range m.rows {
		if r.Name == name {
			return *r, nil
		}
	}
	return domain.Meal{}, perrs.ErrNotFound
}

func (m *memRepo) Deleted(_ context.Context, id int64) (bool, error) {
	r, ok := m.rows[id]
	if !ok {
		return false, perrs.ErrNotFound
	}
	return r.Deleted, nil
}

func (m *memRepo) MarkDeleted(_ context.Context, id int64) error {
	m.rows[id].Deleted = true
	return nil
}

func (m *memRepo) AddBattle(_ context.Context, id int64, won bool) error {
	m.rows[id].Battles++
	if won {
		m.rows[id].Wins++
	}
	return nil
}

func (m *memRepo) Leaderboard(_ context.Context, s domain.LeaderboardSort) ([]domain.LeaderboardEntry, error) {
	m.sorts = append(m.sorts, s)
	var out []domain.LeaderboardEntry
	for _, r := range m.rows {
		if r.Deleted || r.Battles == 0 {
			continue
		}
		out = append(out, domain.LeaderboardEntry{Meal: *r, WinPct: float64(r.Wins) * 100 / float64(r.Battles)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Wins > out[j].Wins })
	return out, nil
}

func (m *memRepo) Reset(context.Context) error {
	m.resets++
	m.rows = map[int64]*domain.Meal{}
	m.nextID = 0
	return nil
}

func newSvc(t *testing.T) (*service.Svc, *memRepo, *testkit.NopTx) {
	t.Helper()
	mem := newMemRepo()
	tx := &testkit.NopTx{}
	b := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return mem })
	return service.New(tx, b), mem, tx
}

func create(t *testing.T, s *service.Svc, name, cuisine string, price float64, d string) domain.Meal {
	t.Helper()
	m, err := s.Create(context.Background(), domain.CreateInput{Meal: name, Cuisine: cuisine, Price: price, Difficulty: d})
	require.NoError(t, err)
	return m
}

func TestNew_PanicsOnNil(t *testing.T) {
	b := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return newMemRepo() })
	testkit.MustPanic(t, func() { service.New(nil, b) })
	testkit.MustPanic(t, func() { service.New(&testkit.NopTx{}, nil) })
}

func TestCreate_NormalizesAndParses(t *testing.T) {
	s, _, _ := newSvc(t)
	m := create(t, s, "  Pad   Thai ", "Thai", 12.5, " high ")
	assert.Equal(t, int64(1), m.ID)
	assert.Equal(t, "Pad Thai", m.Name)
	assert.Equal(t, battle.DifficultyHigh, m.Difficulty)
	assert.Equal(t, 0, m.Battles)
}

func TestCreate_Duplicate(t *testing.T) {
	s, _, _ := newSvc(t)
	create(t, s, "Spaghetti", "Italian", 10, "MED")

	_, err := s.Create(context.Background(), domain.CreateInput{Meal: "Spaghetti ", Cuisine: "Italian", Price: 11, Difficulty: "LOW"})
	require.Error(t, err)
	assert.True(t, perrs.IsCode(err, perrs.ErrorCodeDuplicateKey), "code = %v", perrs.CodeOf(err))
	assert.Contains(t, err.Error(), "meal with name 'Spaghetti' already exists")
}

func TestCreate_InvalidInput(t *testing.T) {
	s, mem, _ := newSvc(t)
	cases := []struct {
		name  string
		in    domain.CreateInput
		field string
	}{
		{"zero price", domain.CreateInput{Meal: "A", Cuisine: "B", Price: 0, Difficulty: "LOW"}, "price"},
		{"negative price", domain.CreateInput{Meal: "A", Cuisine: "B", Price: -1, Difficulty: "LOW"}, "price"},
		{"bad difficulty", domain.CreateInput{Meal: "A", Cuisine: "B", Price: 1, Difficulty: "EXTREME"}, "difficulty"},
		{"blank name", domain.CreateInput{Meal: "  ", Cuisine: "B", Price: 1, Difficulty: "LOW"}, "meal"},
		{"blank cuisine", domain.CreateInput{Meal: "A", Cuisine: "", Price: 1, Difficulty: "LOW"}, "cuisine"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := s.Create(context.Background(), tc.in)
			require.Error(t, err)
			assert.True(t, perrs.IsCode(err, perrs.ErrorCodeInvalidArgument))
			e, ok := perrs.As(err)
			require.True(t, ok)
			assert.Equal(t, tc.field, e.Field())
		})
	}
	assert.Empty(t, mem.rows)
}

func TestDelete_SoftDeletesOnce(t *testing.T) {
	s, mem, tx := newSvc(t)
	m := create(t, s, "Tacos", "Mexican", 8, "LOW")

	require.NoError(t, s.Delete(context.Background(), m.ID))
	assert.True(t, mem.rows[m.ID].Deleted)
	assert.Equal(t, 1, tx.Calls)

	err := s.Delete(context.Background(), m.ID)
	assert.True(t, perrs.IsCode(err, perrs.ErrorCodeNotFound))
	assert.Contains(t, err.Error(), "has been deleted")

	err = s.Delete(context.Background(), 99)
	assert.True(t, perrs.IsCode(err, perrs.ErrorCodeNotFound))
	assert.Contains(t, err.Error(), "meal with ID 99 not found")
}

func TestByID_And_ByName(t *testing.T) {
	s, _, _ := newSvc(t)
	m := create(t, s, "Ramen", "Japanese", 14, "MED")
	ctx := context.Background()

	got, err := s.ByID(ctx, m.ID)
	require.NoError(t, err)
	assert.Equal(t, m, got)

	got, err = s.ByName(ctx, " Ramen")
	require.NoError(t, err)
	assert.Equal(t, m.ID, got.ID)

	_, err = s.ByName(ctx, "Sushi")
	assert.True(t, perrs.IsCode(err, perrs.ErrorCodeNotFound))

	require.NoError(t, s.Delete(ctx, m.ID))
	_, err = s.ByID(ctx, m.ID)
	assert.True(t, perrs.IsCode(err, perrs.ErrorCodeNotFound))
	_, err = s.ByName(ctx, "Ramen")
	assert.True(t, perrs.IsCode(err, perrs.ErrorCodeNotFound))

	_, err = s.ByName(ctx, "")
	assert.True(t, perrs.IsCode(err, perrs.ErrorCodeInvalidArgument))
}

func TestUpdateStats(t *testing.T) {
	s, mem, _ := newSvc(t)
	m := create(t, s, "Curry", "Indian", 9, "HIGH")
	ctx := context.Background()

	require.NoError(t, s.UpdateStats(ctx, m.ID, battle.ResultWin))
	require.NoError(t, s.UpdateStats(ctx, m.ID, battle.ResultLoss))
	require.NoError(t, s.RecordOutcome(ctx, m.ID, battle.ResultWin))
	assert.Equal(t, 3, mem.rows[m.ID].Battles)
	assert.Equal(t, 2, mem.rows[m.ID].Wins)

	err := s.UpdateStats(ctx, m.ID, battle.Result("draw"))
	assert.True(t, perrs.IsCode(err, perrs.ErrorCodeInvalidArgument))
	assert.Equal(t, 3, mem.rows[m.ID].Battles)

	require.NoError(t, s.Delete(ctx, m.ID))
	err = s.UpdateStats(ctx, m.ID, battle.ResultWin)
	assert.True(t, perrs.IsCode(err, perrs.ErrorCodeNotFound))
	assert.Equal(t, 3, mem.rows[m.ID].Battles)
}

func TestUpdateStats_TxFailure(t *testing.T) {
	s, mem, tx := newSvc(t)
	m := create(t, s, "Pho", "Vietnamese", 11, "MED")
	tx.Err = perrs.Unavailablef("pool closed")

	err := s.UpdateStats(context.Background(), m.ID, battle.ResultWin)
	assert.True(t, perrs.IsCode(err, perrs.ErrorCodeUnavailable))
	assert.Zero(t, mem.rows[m.ID].Battles)
}

func TestLeaderboard_SortValidation(t *testing.T) {
	s, mem, _ := newSvc(t)
	a := create(t, s, "A", "X", 1, "LOW")
	b := create(t, s, "B", "X", 1, "LOW")
	create(t, s, "C", "X", 1, "LOW")
	ctx := context.Background()
	require.NoError(t, s.UpdateStats(ctx, a.ID, battle.ResultWin))
	require.NoError(t, s.UpdateStats(ctx, b.ID, battle.ResultLoss))

	out, err := s.Leaderboard(ctx, "")
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, a.ID, out[0].ID)
	assert.Equal(t, 100.0, out[0].WinPct)

	_, err = s.Leaderboard(ctx, "WIN_PCT")
	require.NoError(t, err)
	assert.Equal(t, []domain.LeaderboardSort{domain.SortWins, domain.SortWinPct}, mem.sorts)

	_, err = s.Leaderboard(ctx, "calories")
	assert.True(t, perrs.IsCode(err, perrs.ErrorCodeInvalidArgument))
	assert.Len(t, mem.sorts, 2)
}

func TestClear_ResetsCatalog(t *testing.T) {
	s, mem, _ := newSvc(t)
	create(t, s, "A", "X", 1, "LOW")
	require.NoError(t, s.Clear(context.Background()))
	assert.Equal(t, 1, mem.resets)
	assert.Empty(t, mem.rows)

	m := create(t, s, "A", "X", 1, "LOW")
	assert.Equal(t, int64(1), m.ID)
}
