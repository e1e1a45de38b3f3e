package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealmax/internal/modkit/repokit"
	perrs "mealmax/internal/platform/errors"
	"mealmax/internal/platform/testkit"
	"mealmax/internal/services/api/favorites/domain"
	"mealmax/internal/services/api/favorites/repo"
	"mealmax/internal/services/api/favorites/service"
	mealsdomain "mealmax/internal/services/api/meals/domain"
)

type lookup map[int64]mealsdomain.Meal

func (l lookup) ByID(_ context.Context, id int64) (mealsdomain.Meal, error) {
	m, ok := l[id]
	if !ok {
		return mealsdomain.Meal{}, perrs.NotFoundf("meal with ID %d not found", id)
	}
	return m, nil
}

func (l lookup) ByName(context.Context, string) (mealsdomain.Meal, error) {
	return mealsdomain.Meal{}, perrs.NotFoundf("unused")
}

// memRepo keeps favorites in insertion order
type memRepo struct {
	meals lookup
	ids   []int64
	fail  error
}

func (m *memRepo) Add(_ context.Context, id int64) (time.Time, error) {
	for _, x := range m.ids {
		if x == id {
			return time.Time{}, &pgconn.PgError{Code: "23505"}
		}
	}
	m.ids = append(m.ids, id)
	return time.Date(2026, 1, 1, 0, 0, len(m.ids), 0, time.UTC), nil
}

func (m *memRepo) Remove(_ context.Context, id int64) error {
	for i, x := range m.ids {
		if x == id {
			m.ids = append(m.ids[:i], m.ids[i+1:]...)
			return nil
		}
	}
	return perrs.ErrNotFound
}

func (m *memRepo) Clear(context.Context) error {
	if m.fail != nil {
		return m.fail
	}
	m.ids = nil
	return nil
}

func (m *memRepo) List(context.Context) ([]domain.Favorite, error) {
	out := []domain.Favorite{}
	for _, id := range m.ids {
		if meal, ok := m.meals[id]; ok {
			out = append(out, domain.Favorite{Meal: meal})
		}
	}
	return out, nil
}

func (m *memRepo) Count(ctx context.Context) (int, error) {
	l, _ := m.List(ctx)
	return len(l), nil
}

func newSvc(t *testing.T) (*service.Svc, *memRepo, lookup) {
	t.Helper()
	meals := lookup{
		1: {ID: 1, Name: "Spaghetti"},
		2: {ID: 2, Name: "Dumplings"},
	}
	mem := &memRepo{meals: meals}
	b := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return mem })
	return service.New(&testkit.NopTx{}, b, meals), mem, meals
}

func TestNew_PanicsOnNil(t *testing.T) {
	b := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return &memRepo{} })
	testkit.MustPanic(t, func() { service.New(nil, b, lookup{}) })
	testkit.MustPanic(t, func() { service.New(&testkit.NopTx{}, nil, lookup{}) })
	testkit.MustPanic(t, func() { service.New(&testkit.NopTx{}, b, nil) })
}

func TestAdd(t *testing.T) {
	s, mem, _ := newSvc(t)
	ctx := context.Background()

	f, err := s.Add(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Spaghetti", f.Name)
	assert.False(t, f.AddedAt.IsZero())

	_, err = s.Add(ctx, 1)
	assert.True(t, perrs.IsCode(err, perrs.ErrorCodeDuplicateKey))
	assert.Contains(t, err.Error(), "already in your favorites list")

	_, err = s.Add(ctx, 9)
	assert.True(t, perrs.IsCode(err, perrs.ErrorCodeNotFound))
	assert.Equal(t, []int64{1}, mem.ids)
}

func TestRemove(t *testing.T) {
	s, mem, _ := newSvc(t)
	ctx := context.Background()
	_, _ = s.Add(ctx, 1)
	_, _ = s.Add(ctx, 2)

	require.NoError(t, s.Remove(ctx, 1))
	assert.Equal(t, []int64{2}, mem.ids)

	err := s.Remove(ctx, 1)
	assert.True(t, perrs.IsCode(err, perrs.ErrorCodeNotFound))
	assert.Contains(t, err.Error(), "not in your favorites list")
}

func TestListCountClear(t *testing.T) {
	s, _, meals := newSvc(t)
	ctx := context.Background()
	_, _ = s.Add(ctx, 2)
	_, _ = s.Add(ctx, 1)

	got, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(2), got[0].ID)

	// a meal that left the catalog drops out of reads
	delete(meals, 2)
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, s.Clear(ctx))
	n, _ = s.Count(ctx)
	assert.Zero(t, n)
}

func TestClear_DBError(t *testing.T) {
	s, mem, _ := newSvc(t)
	mem.fail = errors.New("connection refused")
	err := s.Clear(context.Background())
	assert.True(t, perrs.IsCode(err, perrs.ErrorCodeDB))
}
