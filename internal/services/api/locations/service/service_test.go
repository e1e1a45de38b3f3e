package service_test

import (
	"context"
	"encoding/json"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mealmax/internal/modkit/repokit"
	perrs "mealmax/internal/platform/errors"
	"mealmax/internal/platform/testkit"
	"mealmax/internal/services/api/locations/domain"
	"mealmax/internal/services/api/locations/repo"
	"mealmax/internal/services/api/locations/service"
)

type memRepo struct {
	rows map[int64]*domain.Location
	keys map[string]int64
	next int64
}

func newMemRepo() *memRepo {
	return &memRepo{rows: map[int64]*domain.Location{}, keys: map[string]int64{}}
}

func (m *memRepo) Insert(_ context.Context, name, key string) (domain.Location, error) {
	if _, ok := m.keys[key]; ok {
		return domain.Location{}, &pgconn.PgError{Code: "23505"}
	}
	m.next++
	l := &domain.Location{ID: m.next, Name: name, CreatedAt: time.Unix(m.next, 0)}
	m.rows[l.ID] = l
	m.keys[key] = l.ID
	return *l, nil
}

func (m *memRepo) Get(_ context.Context, id int64) (domain.Location, error) {
	l, ok := m.rows[id]
	if !ok {
		return domain.Location{}, perrs.ErrNotFound
	}
	return *l, nil
}

func (m *memRepo) Lock(ctx context.Context, id int64) (domain.Location, error) { return m.Get(ctx, id) }

func (m *memRepo) MarkDeleted(_ context.Context, id int64) error {
	m.rows[id].Deleted = true
	m.rows[id].Favorite = false
	return nil
}

func (m *memRepo) SetFavorite(_ context.Context, id int64, fav bool) (domain.Location, error) {
	m.rows[id].Favorite = fav
	return *m.rows[id], nil
}

func (m *memRepo) filter(keep func(domain.Location) bool) []domain.Location {
	out := []domain.Location{}
	for _, l := range m.rows {
		if !l.Deleted && keep(*l) {
			out = append(out, *l)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *memRepo) List(context.Context) ([]domain.Location, error) {
	return m.filter(func(domain.Location) bool { return true }), nil
}

func (m *memRepo) Favorites(context.Context) ([]domain.Location, error) {
	return m.filter(func(l domain.Location) bool { return l.Favorite }), nil
}

func (m *memRepo) Reset(context.Context) error {
	*m = *newMemRepo()
	return nil
}

// fakeWeather answers per city; unknown cities are NotFound
type fakeWeather struct {
	mu    sync.Mutex
	calls []string
	down  bool
}

func (f *fakeWeather) get(kind, city string) (json.RawMessage, error) {
	f.mu.Lock()
	f.calls = append(f.calls, kind+":"+city)
	f.mu.Unlock()
	if f.down {
		return nil, perrs.Unavailablef("weather unexpected status 502")
	}
	if city == "Atlantis" {
		return nil, perrs.NotFoundf("weather for %q not found", city)
	}
	return json.RawMessage(`{"name":"` + city + `","kind":"` + kind + `"}`), nil
}

func (f *fakeWeather) Current(_ context.Context, city string) (json.RawMessage, error) {
	return f.get("weather", city)
}

func (f *fakeWeather) Forecast(_ context.Context, city string) (json.RawMessage, error) {
	return f.get("forecast", city)
}

func newSvc(t *testing.T) (*service.Svc, *memRepo, *fakeWeather) {
	t.Helper()
	mem := newMemRepo()
	w := &fakeWeather{}
	b := repokit.BindFunc[repo.Repo](func(repokit.Queryer) repo.Repo { return mem })
	return service.New(&testkit.NopTx{}, b, w), mem, w
}

func TestCreate_FoldsDuplicates(t *testing.T) {
	s, _, _ := newSvc(t)
	ctx := context.Background()

	l, err := s.Create(ctx, "  New   York ")
	require.NoError(t, err)
	assert.Equal(t, "New York", l.Name)

	_, err = s.Create(ctx, "new york")
	assert.True(t, perrs.IsCode(err, perrs.ErrorCodeDuplicateKey))

	_, err = s.Create(ctx, " ")
	assert.True(t, perrs.IsCode(err, perrs.ErrorCodeInvalidArgument))
}

func TestDeleteAndByID(t *testing.T) {
	s, mem, _ := newSvc(t)
	ctx := context.Background()
	l, _ := s.Create(ctx, "Boston")
	_, _ = s.SetFavorite(ctx, l.ID, true)

	require.NoError(t, s.Delete(ctx, l.ID))
	assert.False(t, mem.rows[l.ID].Favorite)

	_, err := s.ByID(ctx, l.ID)
	assert.True(t, perrs.IsCode(err, perrs.ErrorCodeNotFound))
	assert.True(t, perrs.IsCode(s.Delete(ctx, l.ID), perrs.ErrorCodeNotFound))
	assert.True(t, perrs.IsCode(s.Delete(ctx, 42), perrs.ErrorCodeNotFound))

	_, err = s.SetFavorite(ctx, l.ID, true)
	assert.True(t, perrs.IsCode(err, perrs.ErrorCodeNotFound))
}

func TestFavoritesWeather(t *testing.T) {
	s, _, w := newSvc(t)
	ctx := context.Background()
	for _, c := range []string{"Boston", "Paris", "Atlantis", "Lima"} {
		l, err := s.Create(ctx, c)
		require.NoError(t, err)
		if c != "Lima" {
			_, err = s.SetFavorite(ctx, l.ID, true)
			require.NoError(t, err)
		}
	}

	out, err := s.FavoritesWeather(ctx, domain.KindForecast)
	require.NoError(t, err)
	require.Len(t, out, 3)
	assert.Equal(t, "Boston", out[0].Location)
	assert.JSONEq(t, `{"name":"Boston","kind":"forecast"}`, string(out[0].Payload))
	assert.Equal(t, "Paris", out[1].Location)
	assert.Empty(t, out[2].Payload)
	assert.Contains(t, out[2].Error, "not found")
	assert.Len(t, w.calls, 3)

	_, err = s.FavoritesWeather(ctx, "tides")
	assert.True(t, perrs.IsCode(err, perrs.ErrorCodeInvalidArgument))

	w.down = true
	_, err = s.FavoritesWeather(ctx, domain.KindCurrent)
	assert.True(t, perrs.IsCode(err, perrs.ErrorCodeUnavailable))
}

func TestFavoritesWeather_NoFavorites(t *testing.T) {
	s, _, w := newSvc(t)
	out, err := s.FavoritesWeather(context.Background(), domain.KindCurrent)
	require.NoError(t, err)
	assert.Empty(t, out)
	assert.NotNil(t, out)
	assert.Empty(t, w.calls)
}

func TestClear(t *testing.T) {
	s, _, _ := newSvc(t)
	ctx := context.Background()
	_, _ = s.Create(ctx, "Boston")
	require.NoError(t, s.Clear(ctx))

	got, err := s.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	l, err := s.Create(ctx, "Boston")
	require.NoError(t, err)
	assert.Equal(t, int64(1), l.ID)
}
