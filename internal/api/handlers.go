package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"github.com/kdimtricp/auteur/internal/directors"
	"github.com/kdimtricp/auteur/internal/models"
	"github.com/kdimtricp/auteur/internal/recommendation"
)

// MovieSource is the part of the TMDb client the movie pages read.
type MovieSource interface {
	GetMovie(ctx context.Context, movieID int) (*models.Movie, error)
	SearchMovies(ctx context.Context, query string) ([]models.Movie, error)
	ImageURL(path *string, size string) string
}

type Handlers struct {
	movies    MovieSource
	directors *directors.Service
	quiz      *recommendation.Service
}

func NewHandlers(movies MovieSource, directorService *directors.Service, quizService *recommendation.Service) *Handlers {
	return &Handlers{
		movies:    movies,
		directors: directorService,
		quiz:      quizService,
	}
}

func PingHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("pong"))
}

type movieResponse struct {
	*models.Movie
	PosterURL   string `json:"poster_url,omitempty"`
	BackdropURL string `json:"backdrop_url,omitempty"`
}

type directorResponse struct {
	*models.DirectorProfile
	Era        string `json:"era,omitempty"`
	ProfileURL string `json:"profile_url,omitempty"`
}

type searchResponse struct {
	Query     string            `json:"query"`
	Movies    []models.Movie    `json:"movies"`
	Directors []models.Director `json:"directors"`
}

func (h *Handlers) GetMovie(w http.ResponseWriter, r *http.Request) {
	movieID, ok := intParam(w, chi.URLParam(r, "movieID"), "movie id")
	if !ok {
		return
	}

	movie, err := h.movies.GetMovie(r.Context(), movieID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, movieResponse{
		Movie:       movie,
		PosterURL:   h.movies.ImageURL(movie.PosterPath, "w500"),
		BackdropURL: h.movies.ImageURL(movie.BackdropPath, "w1280"),
	})
}

// Search looks up movies and directors matching q concurrently.
func (h *Handlers) Search(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		writeError(w, http.StatusBadRequest, "query parameter q is required")
		return
	}

	resp := searchResponse{Query: query}
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		movies, err := h.movies.SearchMovies(ctx, query)
		resp.Movies = movies
		return err
	})
	g.Go(func() error {
		found, err := h.directors.Search(ctx, query)
		resp.Directors = found
		return err
	})
	if err := g.Wait(); err != nil {
		writeServiceError(w, r, err)
		return
	}

	if resp.Movies == nil {
		resp.Movies = []models.Movie{}
	}
	if resp.Directors == nil {
		resp.Directors = []models.Director{}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handlers) GetDirector(w http.ResponseWriter, r *http.Request) {
	directorID, ok := intParam(w, chi.URLParam(r, "directorID"), "director id")
	if !ok {
		return
	}

	profile, err := h.directors.Profile(r.Context(), directorID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, directorResponse{
		DirectorProfile: profile,
		Era:             directors.EraOf(profile.Stats),
		ProfileURL:      h.movies.ImageURL(profile.Director.ProfilePath, "w185"),
	})
}

func (h *Handlers) CompareDirectors(w http.ResponseWriter, r *http.Request) {
	a, ok := intParam(w, r.URL.Query().Get("a"), "director a")
	if !ok {
		return
	}
	b, ok := intParam(w, r.URL.Query().Get("b"), "director b")
	if !ok {
		return
	}

	comparison, err := h.directors.Compare(r.Context(), a, b)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, comparison)
}

// intParam parses a positive integer ID, writing a 400 when it is not one.
func intParam(w http.ResponseWriter, raw, name string) (int, bool) {
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "invalid "+name)
		return 0, false
	}
	return id, true
}
