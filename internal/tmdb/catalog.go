package tmdb

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/kdimtricp/auteur/internal/metrics"
	"github.com/kdimtricp/auteur/internal/models"
)

const (
	DefaultTopRatedPages = 5
	DefaultSnapshotTTL   = 12 * time.Hour
)

// MovieSource is the part of the TMDb API the catalog reads.
type MovieSource interface {
	TopRated(ctx context.Context, page int) (*MoviePage, error)
	Genres(ctx context.Context) ([]models.Genre, error)
}

// SnapshotStore persists the last fetched pool between restarts.
type SnapshotStore interface {
	ReplaceSnapshot(ctx context.Context, movies []models.Movie) error
	LoadSnapshot(ctx context.Context) (models.CatalogSnapshot, error)
}

type CatalogConfig struct {
	TopRatedPages int
	SnapshotTTL   time.Duration
}

// Catalog provides the candidate pool for recommendations: several pages
// of TMDb's top rated movies with genre names filled in.
type Catalog struct {
	source MovieSource
	store  SnapshotStore
	cfg    CatalogConfig
	logger zerolog.Logger
	now    func() time.Time

	mu       sync.Mutex
	pool     []models.Movie
	pooledAt time.Time
}

// NewCatalog builds a catalog. store may be nil, in which case the pool is
// only kept in memory.
//
//nolint:gocritic // zerolog.Logger is passed by value
func NewCatalog(source MovieSource, store SnapshotStore, cfg CatalogConfig, logger zerolog.Logger) *Catalog {
	if cfg.TopRatedPages <= 0 {
		cfg.TopRatedPages = DefaultTopRatedPages
	}
	if cfg.SnapshotTTL <= 0 {
		cfg.SnapshotTTL = DefaultSnapshotTTL
	}
	return &Catalog{
		source: source,
		store:  store,
		cfg:    cfg,
		logger: logger.With().Str("component", "catalog").Logger(),
		now:    time.Now,
	}
}

// GetTopRatedMovies returns the candidate pool. A fresh in-memory or stored
// snapshot is served as is. Otherwise the pool is fetched from TMDb, and if
// that fails a stale snapshot is served instead.
func (c *Catalog) GetTopRatedMovies(ctx context.Context) ([]models.Movie, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.fresh(c.pooledAt) && len(c.pool) > 0 {
		metrics.RecordCacheLookup("catalog_snapshot", true)
		return clonePool(c.pool), nil
	}

	var stale models.CatalogSnapshot
	if c.store != nil {
		snap, err := c.store.LoadSnapshot(ctx)
		switch {
		case err != nil:
			c.logger.Warn().Err(err).Msg("loading catalog snapshot failed")
		case len(snap.Movies) > 0 && c.fresh(snap.FetchedAt):
			metrics.RecordCacheLookup("catalog_snapshot", true)
			c.pool, c.pooledAt = snap.Movies, snap.FetchedAt
			return clonePool(c.pool), nil
		default:
			stale = snap
		}
	}
	metrics.RecordCacheLookup("catalog_snapshot", false)

	movies, err := c.fetch(ctx)
	if err != nil {
		if len(c.pool) > 0 {
			c.logger.Warn().Err(err).Msg("catalog refresh failed, serving in-memory pool")
			return clonePool(c.pool), nil
		}
		if len(stale.Movies) > 0 {
			c.logger.Warn().Err(err).Time("fetched_at", stale.FetchedAt).Msg("catalog refresh failed, serving stale snapshot")
			c.pool, c.pooledAt = stale.Movies, stale.FetchedAt
			return clonePool(c.pool), nil
		}
		return nil, fmt.Errorf("fetching top rated movies: %w", err)
	}

	c.pool, c.pooledAt = movies, c.now()
	if c.store != nil {
		if err := c.store.ReplaceSnapshot(ctx, movies); err != nil {
			c.logger.Warn().Err(err).Msg("saving catalog snapshot failed")
		}
	}

	c.logger.Info().Int("movies", len(movies)).Int("pages", c.cfg.TopRatedPages).Msg("catalog refreshed")
	return clonePool(c.pool), nil
}

// Invalidate forces the next call to refetch from TMDb.
func (c *Catalog) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.pool, c.pooledAt = nil, time.Time{}
}

func (c *Catalog) fresh(at time.Time) bool {
	return !at.IsZero() && c.now().Sub(at) < c.cfg.SnapshotTTL
}

func (c *Catalog) fetch(ctx context.Context) ([]models.Movie, error) {
	pages := make([][]models.Movie, c.cfg.TopRatedPages)
	var genres []models.Genre

	g, gctx := errgroup.WithContext(ctx)
	for i := range pages {
		g.Go(func() error {
			page, err := c.source.TopRated(gctx, i+1)
			if err != nil {
				return err
			}
			pages[i] = page.Results
			return nil
		})
	}
	g.Go(func() error {
		list, err := c.source.Genres(gctx)
		if err != nil {
			c.logger.Warn().Err(err).Msg("genre list unavailable, using built-in genres")
			return nil
		}
		genres = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	names := GenreNames(genres)

	seen := make(map[int]bool)
	var movies []models.Movie
	for _, page := range pages {
		for _, m := range page {
			if seen[m.ID] {
				continue
			}
			seen[m.ID] = true
			movies = append(movies, HydrateGenres(m, names))
		}
	}
	return movies, nil
}

// HydrateGenres fills m.Genres from its genre IDs. Movies that already
// carry genre objects are returned unchanged.
func HydrateGenres(m models.Movie, names map[int]string) models.Movie {
	if len(m.Genres) > 0 || len(m.GenreIDs) == 0 {
		return m
	}
	m.Genres = make([]models.Genre, 0, len(m.GenreIDs))
	for _, id := range m.GenreIDs {
		if name, ok := names[id]; ok {
			m.Genres = append(m.Genres, models.Genre{ID: id, Name: name})
		}
	}
	return m
}

func clonePool(pool []models.Movie) []models.Movie {
	out := make([]models.Movie, len(pool))
	copy(out, pool)
	return out
}
