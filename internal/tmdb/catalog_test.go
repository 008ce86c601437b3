package tmdb

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdimtricp/auteur/internal/models"
)

type fakeSource struct {
	mu        sync.Mutex
	pages     map[int][]models.Movie
	genres    []models.Genre
	pageErr   error
	genreErr  error
	pageCalls int
}

func (f *fakeSource) TopRated(ctx context.Context, page int) (*MoviePage, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pageCalls++
	if f.pageErr != nil {
		return nil, f.pageErr
	}
	return &MoviePage{Page: page, Results: f.pages[page]}, nil
}

func (f *fakeSource) Genres(ctx context.Context) ([]models.Genre, error) {
	if f.genreErr != nil {
		return nil, f.genreErr
	}
	return f.genres, nil
}

func (f *fakeSource) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pageCalls
}

type memoryStore struct {
	snap    models.CatalogSnapshot
	saved   []models.Movie
	loadErr error
}

func (m *memoryStore) ReplaceSnapshot(ctx context.Context, movies []models.Movie) error {
	m.saved = movies
	return nil
}

func (m *memoryStore) LoadSnapshot(ctx context.Context) (models.CatalogSnapshot, error) {
	return m.snap, m.loadErr
}

func twoPageSource() *fakeSource {
	return &fakeSource{
		pages: map[int][]models.Movie{
			1: {
				{ID: 238, Title: "The Godfather", GenreIDs: []int{18, 80}},
				{ID: 496243, Title: "Parasite", GenreIDs: []int{35, 53, 18}},
			},
			2: {
				{ID: 496243, Title: "Parasite", GenreIDs: []int{35, 53, 18}},
				{ID: 129, Title: "Spirited Away", GenreIDs: []int{16, 10751, 14}},
			},
		},
		genres: []models.Genre{
			{ID: 18, Name: "Drama"},
			{ID: 80, Name: "Crime"},
			{ID: 35, Name: "Comedy"},
			{ID: 53, Name: "Thriller"},
			{ID: 16, Name: "Animation"},
			{ID: 14, Name: "Fantasy"},
		},
	}
}

func titles(movies []models.Movie) []string {
	out := make([]string, 0, len(movies))
	for _, m := range movies {
		out = append(out, m.Title)
	}
	return out
}

func TestCatalog_FetchesAndHydrates(t *testing.T) {
	source := twoPageSource()
	catalog := NewCatalog(source, nil, CatalogConfig{TopRatedPages: 2}, zerolog.Nop())

	movies, err := catalog.GetTopRatedMovies(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"The Godfather", "Parasite", "Spirited Away"}, titles(movies))
	assert.Equal(t, []string{"Drama", "Crime"}, movies[0].GenreNames())
	assert.Equal(t, []string{"Comedy", "Thriller", "Drama"}, movies[1].GenreNames())
	// 10751 is not in the fetched list
	assert.Equal(t, []string{"Animation", "Fantasy"}, movies[2].GenreNames())
}

func TestCatalog_FallsBackToBuiltInGenres(t *testing.T) {
	source := twoPageSource()
	source.genreErr = errors.New("genre endpoint down")
	catalog := NewCatalog(source, nil, CatalogConfig{TopRatedPages: 2}, zerolog.Nop())

	movies, err := catalog.GetTopRatedMovies(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 3)
	assert.Equal(t, []string{"Animation", "Family", "Fantasy"}, movies[2].GenreNames())
}

func TestCatalog_ServesFromMemoryUntilStale(t *testing.T) {
	source := twoPageSource()
	catalog := NewCatalog(source, nil, CatalogConfig{TopRatedPages: 2, SnapshotTTL: time.Hour}, zerolog.Nop())

	now := time.Now()
	catalog.now = func() time.Time { return now }

	_, err := catalog.GetTopRatedMovies(context.Background())
	require.NoError(t, err)
	_, err = catalog.GetTopRatedMovies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, source.calls())

	catalog.now = func() time.Time { return now.Add(2 * time.Hour) }
	_, err = catalog.GetTopRatedMovies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, source.calls())

	catalog.Invalidate()
	_, err = catalog.GetTopRatedMovies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 6, source.calls())
}

func TestCatalog_ReturnsCopies(t *testing.T) {
	catalog := NewCatalog(twoPageSource(), nil, CatalogConfig{TopRatedPages: 2}, zerolog.Nop())

	first, err := catalog.GetTopRatedMovies(context.Background())
	require.NoError(t, err)
	first[0].Title = "tampered"

	second, err := catalog.GetTopRatedMovies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "The Godfather", second[0].Title)
}

func TestCatalog_UsesFreshStoredSnapshot(t *testing.T) {
	source := twoPageSource()
	store := &memoryStore{snap: models.CatalogSnapshot{
		Movies:    []models.Movie{{ID: 1, Title: "Stored"}},
		FetchedAt: time.Now().Add(-time.Minute),
	}}
	catalog := NewCatalog(source, store, CatalogConfig{TopRatedPages: 2}, zerolog.Nop())

	movies, err := catalog.GetTopRatedMovies(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Stored"}, titles(movies))
	assert.Zero(t, source.calls())
}

func TestCatalog_RefreshesStaleSnapshotAndSaves(t *testing.T) {
	source := twoPageSource()
	store := &memoryStore{snap: models.CatalogSnapshot{
		Movies:    []models.Movie{{ID: 1, Title: "Old"}},
		FetchedAt: time.Now().Add(-48 * time.Hour),
	}}
	catalog := NewCatalog(source, store, CatalogConfig{TopRatedPages: 2}, zerolog.Nop())

	movies, err := catalog.GetTopRatedMovies(context.Background())
	require.NoError(t, err)

	assert.Len(t, movies, 3)
	assert.Equal(t, titles(movies), titles(store.saved))
}

func TestCatalog_FallsBackToStaleSnapshot(t *testing.T) {
	source := twoPageSource()
	source.pageErr = errors.New("tmdb down")
	store := &memoryStore{snap: models.CatalogSnapshot{
		Movies:    []models.Movie{{ID: 1, Title: "Old"}},
		FetchedAt: time.Now().Add(-48 * time.Hour),
	}}
	catalog := NewCatalog(source, store, CatalogConfig{TopRatedPages: 2}, zerolog.Nop())

	movies, err := catalog.GetTopRatedMovies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Old"}, titles(movies))
	assert.Nil(t, store.saved)
}

func TestCatalog_FetchFailureWithoutSnapshot(t *testing.T) {
	boom := errors.New("tmdb down")
	source := twoPageSource()
	source.pageErr = boom
	store := &memoryStore{loadErr: errors.New("no table")}
	catalog := NewCatalog(source, store, CatalogConfig{TopRatedPages: 2}, zerolog.Nop())

	movies, err := catalog.GetTopRatedMovies(context.Background())
	assert.Nil(t, movies)
	assert.ErrorIs(t, err, boom)
}

func TestHydrateGenresKeepsExistingNames(t *testing.T) {
	m := models.Movie{Genres: []models.Genre{{ID: 18, Name: "Drama"}}, GenreIDs: []int{53}}

	got := HydrateGenres(m, map[int]string{53: "Thriller"})
	assert.Equal(t, []string{"Drama"}, got.GenreNames())
}
