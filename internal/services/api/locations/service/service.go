// Package service manages weather locations and fetches weather for favorites
package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"mealmax/internal/core/normalize"
	"mealmax/internal/modkit/repokit"
	perrs "mealmax/internal/platform/errors"
	"mealmax/internal/platform/logger"
	"mealmax/internal/services/api/locations/domain"
	"mealmax/internal/services/api/locations/repo"
)

// fanout caps concurrent provider calls per request
const fanout = 4

// Service is the public service port
type Service interface {
	domain.ServicePort
}

// Svc implements the service port
type Svc struct {
	Repo    repo.Repo
	binder  repokit.Binder[repo.Repo]
	db      repokit.TxRunner
	weather domain.WeatherPort
}

var _ Service = (*Svc)(nil)

// New constructs the service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], weather domain.WeatherPort) *Svc {
	if db == nil {
		panic("locations.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("locations.Service requires a non nil Repo binder")
	}
	if weather == nil {
		panic("locations.Service requires a non nil weather client")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, weather: weather}
}

// Create stores a location; names that fold to the same key are duplicates
func (s *Svc) Create(ctx context.Context, name string) (domain.Location, error) {
	n := normalize.Name(name)
	if n == "" {
		return domain.Location{}, perrs.WithField(perrs.InvalidArgf("location is required"), "location")
	}
	l, err := s.Repo.Insert(ctx, n, normalize.Key(n))
	if err != nil {
		if perrs.IsDuplicateKey(err) {
			return domain.Location{}, perrs.DuplicateKeyf("location '%s' already exists", n)
		}
		return domain.Location{}, perrs.FromPostgres(err, "create location")
	}
	logger.C(ctx).Info().Int64("location_id", l.ID).Str("location", l.Name).Msg("location created")
	return l, nil
}

// Delete soft deletes a location and drops its favorite flag
func (s *Svc) Delete(ctx context.Context, id int64) error {
	return repokit.InTx(ctx, s.db, s.binder, func(r repo.Repo) error {
		if _, err := lockLive(ctx, r, id); err != nil {
			return err
		}
		if err := r.MarkDeleted(ctx, id); err != nil {
			return perrs.FromPostgresf(err, "delete location %d", id)
		}
		logger.C(ctx).Info().Int64("location_id", id).Msg("location marked as deleted")
		return nil
	})
}

// ByID returns a live location
func (s *Svc) ByID(ctx context.Context, id int64) (domain.Location, error) {
	l, err := s.Repo.Get(ctx, id)
	if err != nil {
		return domain.Location{}, notFoundOr(err, id)
	}
	if l.Deleted {
		return domain.Location{}, perrs.NotFoundf("location with ID %d has been deleted", id)
	}
	return l, nil
}

// List returns live locations by id
func (s *Svc) List(ctx context.Context) ([]domain.Location, error) {
	out, err := s.Repo.List(ctx)
	if err != nil {
		return nil, perrs.FromPostgres(err, "list locations")
	}
	return out, nil
}

// SetFavorite flags or unflags a live location
func (s *Svc) SetFavorite(ctx context.Context, id int64, favorite bool) (domain.Location, error) {
	var out domain.Location
	err := repokit.InTx(ctx, s.db, s.binder, func(r repo.Repo) error {
		if _, err := lockLive(ctx, r, id); err != nil {
			return err
		}
		l, err := r.SetFavorite(ctx, id, favorite)
		if err != nil {
			return perrs.FromPostgresf(err, "favorite location %d", id)
		}
		out = l
		return nil
	})
	if err != nil {
		return domain.Location{}, err
	}
	logger.C(ctx).Info().Int64("location_id", id).Bool("favorite", favorite).Msg("location favorite updated")
	return out, nil
}

// Clear drops and recreates the locations table
func (s *Svc) Clear(ctx context.Context) error {
	err := repokit.InTx(ctx, s.db, s.binder, func(r repo.Repo) error {
		return r.Reset(ctx)
	})
	if err != nil {
		return perrs.FromPostgres(err, "clear locations")
	}
	logger.C(ctx).Info().Msg("locations cleared")
	return nil
}

// FavoritesWeather fetches kind for every live favorite in id order
// A city the provider does not know is reported on its entry; any other provider failure fails the call
func (s *Svc) FavoritesWeather(ctx context.Context, kind domain.Kind) ([]domain.Report, error) {
	fetch := s.weather.Current
	switch kind {
	case domain.KindCurrent:
	case domain.KindForecast:
		fetch = s.weather.Forecast
	default:
		return nil, perrs.InvalidArgf("unknown weather kind: %s", kind)
	}

	favs, err := s.Repo.Favorites(ctx)
	if err != nil {
		return nil, perrs.FromPostgres(err, "list favorite locations")
	}

	out := make([]domain.Report, len(favs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(fanout)
	for i, l := range favs {
		g.Go(func() error {
			out[i] = domain.Report{LocationID: l.ID, Location: l.Name}
			raw, err := fetch(gctx, l.Name)
			switch {
			case err == nil:
				out[i].Payload = raw
			case perrs.IsCode(err, perrs.ErrorCodeNotFound):
				out[i].Error = perrs.WireFrom(err).Message
			default:
				return err
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		logger.C(ctx).Warn().Err(err).Str("kind", string(kind)).Msg("favorite weather fetch failed")
		return nil, err
	}
	logger.C(ctx).Debug().Str("kind", string(kind)).Int("locations", len(out)).Msg("favorite weather fetched")
	return out, nil
}

func lockLive(ctx context.Context, r repo.Repo, id int64) (domain.Location, error) {
	l, err := r.Lock(ctx, id)
	if err != nil {
		return domain.Location{}, notFoundOr(err, id)
	}
	if l.Deleted {
		return domain.Location{}, perrs.NotFoundf("location with ID %d has been deleted", id)
	}
	return l, nil
}

func notFoundOr(err error, id int64) error {
	if perrs.IsCode(err, perrs.ErrorCodeNotFound) {
		return perrs.NotFoundf("location with ID %d not found", id)
	}
	return perrs.FromPostgresf(err, "load location %d", id)
}
