package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdimtricp/auteur/internal/database"
	"github.com/kdimtricp/auteur/internal/directors"
	"github.com/kdimtricp/auteur/internal/quiz"
	"github.com/kdimtricp/auteur/internal/recommendation"
	"github.com/kdimtricp/auteur/internal/tmdb"
)

const topRatedPage = `{
	"page": 1, "total_pages": 1, "total_results": 3,
	"results": [
		{"id": 129, "title": "Spirited Away", "release_date": "2001-07-20", "genre_ids": [16, 10751, 14], "original_language": "ja", "vote_average": 8.5, "vote_count": 16000},
		{"id": 496243, "title": "Parasite", "release_date": "2019-05-30", "genre_ids": [35, 53, 18], "original_language": "ko", "vote_average": 8.5, "vote_count": 18000},
		{"id": 680, "title": "Pulp Fiction", "release_date": "1994-09-10", "genre_ids": [53, 80], "original_language": "en", "vote_average": 8.5, "vote_count": 27000}
	]
}`

// fakeTMDb serves just enough of the TMDb API for the catalog. down makes
// every endpoint fail.
func fakeTMDb(t *testing.T, down *atomic.Bool, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/movie/top_rated", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if down.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(topRatedPage))
	})
	mux.HandleFunc("/genre/movie/list", func(w http.ResponseWriter, r *http.Request) {
		if down.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"genres": [{"id": 16, "name": "Animation"}, {"id": 14, "name": "Fantasy"}, {"id": 53, "name": "Thriller"}]}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

type stack struct {
	server  *httptest.Server
	catalog *tmdb.Catalog
}

func newStack(t *testing.T, db *database.DB, tmdbURL string) stack {
	t.Helper()

	client := tmdb.NewClient(tmdb.Config{
		APIKey:             "test-key",
		BaseURL:            tmdbURL,
		RequestsPerSecond:  1000,
		Timeout:            5 * time.Second,
		BreakerMaxFailures: 100,
	})
	catalog := tmdb.NewCatalog(client, database.NewCatalogRepository(db),
		tmdb.CatalogConfig{TopRatedPages: 1, SnapshotTTL: time.Hour}, zerolog.Nop())
	quizService := recommendation.NewService(quiz.NewGenerator(), catalog, recommendation.Config{}, zerolog.Nop())

	handlers := NewHandlers(client, directors.NewService(client, zerolog.Nop()), quizService)
	srv := httptest.NewServer(NewRouter(handlers, RouterConfig{CORSOrigins: []string{"*"}}))
	t.Cleanup(srv.Close)
	return stack{server: srv, catalog: catalog}
}

func openStore(t *testing.T, path string) *database.DB {
	t.Helper()
	db, err := database.NewDB(database.Config{Type: database.TypeSQLite, SQLitePath: path})
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.RunMigrations(context.Background()))
	return db
}

func TestStack_RecommendationsPersistSnapshot(t *testing.T) {
	var down atomic.Bool
	var hits atomic.Int32
	tmdbSrv := fakeTMDb(t, &down, &hits)
	db := openStore(t, filepath.Join(t.TempDir(), "auteur.db"))
	s := newStack(t, db, tmdbSrv.URL)

	resp, body := do(t, http.MethodPost, s.server.URL+"/api/recommendations",
		`{"profile": {"visualStyles": {"whimsical": 1, "vibrant": 1}}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	recs := decode[recommendationsResponse](t, body)
	require.Len(t, recs.Recommendations, 3)
	assert.Equal(t, "Spirited Away", recs.Recommendations[0].Movie.Title)
	assert.True(t, recs.Recommendations[0].Movie.HasGenre("Animation"), "genre ids are hydrated")

	count, err := database.NewCatalogRepository(db).Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	// second request is served from memory
	do(t, http.MethodPost, s.server.URL+"/api/recommendations", `{"profile": {}}`)
	assert.Equal(t, int32(1), hits.Load())
}

func TestStack_RestartServesStoredSnapshot(t *testing.T) {
	var down atomic.Bool
	var hits atomic.Int32
	tmdbSrv := fakeTMDb(t, &down, &hits)
	path := filepath.Join(t.TempDir(), "auteur.db")

	first := newStack(t, openStore(t, path), tmdbSrv.URL)
	_, err := first.catalog.GetTopRatedMovies(context.Background())
	require.NoError(t, err)
	require.Equal(t, int32(1), hits.Load())

	down.Store(true)
	second := newStack(t, openStore(t, path), tmdbSrv.URL)

	resp, body := do(t, http.MethodPost, second.server.URL+"/api/recommendations", `{"profile": {}}`)
	require.Equal(t, http.StatusOK, resp.StatusCode, string(body))
	assert.Len(t, decode[recommendationsResponse](t, body).Recommendations, 3)
	assert.Equal(t, int32(1), hits.Load(), "fresh stored snapshot skips TMDb")
}

func TestStack_ProviderDownWithoutSnapshot(t *testing.T) {
	var down atomic.Bool
	var hits atomic.Int32
	down.Store(true)
	tmdbSrv := fakeTMDb(t, &down, &hits)
	s := newStack(t, openStore(t, filepath.Join(t.TempDir(), "auteur.db")), tmdbSrv.URL)

	resp, _ := do(t, http.MethodPost, s.server.URL+"/api/recommendations", `{"profile": {}}`)
	assert.Equal(t, http.StatusBadGateway, resp.StatusCode)
}
