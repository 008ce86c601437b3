package directors

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/kdimtricp/auteur/internal/models"
	"github.com/kdimtricp/auteur/internal/tmdb"
)

const (
	directorJob         = "Director"
	directingDepartment = "Directing"
)

var (
	ErrNoDirectedFilms = errors.New("person has no directing credits")
	ErrSameDirector    = errors.New("cannot compare a director with themselves")
)

// Source is the part of the TMDb client the director pages read.
type Source interface {
	GetPerson(ctx context.Context, personID int) (*models.Director, error)
	GetPersonMovieCredits(ctx context.Context, personID int) (*tmdb.MovieCredits, error)
	SearchPeople(ctx context.Context, query string) ([]models.Director, error)
	Genres(ctx context.Context) ([]models.Genre, error)
}

// Verdict compares one metric between two directors. Winner is "a", "b" or
// "tie".
type Verdict struct {
	Metric string  `json:"metric"`
	A      float64 `json:"a"`
	B      float64 `json:"b"`
	Winner string  `json:"winner"`
}

type Comparison struct {
	A            models.DirectorProfile `json:"a"`
	B            models.DirectorProfile `json:"b"`
	Verdicts     []Verdict              `json:"verdicts"`
	SharedGenres []string               `json:"shared_genres"`
}

type Service struct {
	source Source
	logger zerolog.Logger
}

//nolint:gocritic // zerolog.Logger is passed by value
func NewService(source Source, logger zerolog.Logger) *Service {
	return &Service{
		source: source,
		logger: logger.With().Str("component", "directors").Logger(),
	}
}

// Profile returns a person's details, the films they directed (newest first)
// and a summary of that filmography.
func (s *Service) Profile(ctx context.Context, personID int) (*models.DirectorProfile, error) {
	var (
		person  *models.Director
		credits *tmdb.MovieCredits
		genres  []models.Genre
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		person, err = s.source.GetPerson(gctx, personID)
		return err
	})
	g.Go(func() error {
		var err error
		credits, err = s.source.GetPersonMovieCredits(gctx, personID)
		return err
	})
	g.Go(func() error {
		list, err := s.source.Genres(gctx)
		if err != nil {
			s.logger.Warn().Err(err).Msg("genre list unavailable, using built-in genres")
			return nil
		}
		genres = list
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("loading director %d: %w", personID, err)
	}

	films := directedFilms(credits.Crew, tmdb.GenreNames(genres))
	if len(films) == 0 {
		return nil, fmt.Errorf("person %d: %w", personID, ErrNoDirectedFilms)
	}

	s.logger.Debug().Int("person_id", personID).Int("films", len(films)).Msg("director profile built")

	return &models.DirectorProfile{
		Director: *person,
		Films:    films,
		Stats:    ComputeStats(films),
	}, nil
}

// Compare loads both profiles concurrently and scores them metric by metric.
func (s *Service) Compare(ctx context.Context, a, b int) (*Comparison, error) {
	if a == b {
		return nil, ErrSameDirector
	}

	var profileA, profileB *models.DirectorProfile
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		profileA, err = s.Profile(gctx, a)
		return err
	})
	g.Go(func() error {
		var err error
		profileB, err = s.Profile(gctx, b)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sa, sb := profileA.Stats, profileB.Stats
	return &Comparison{
		A: *profileA,
		B: *profileB,
		Verdicts: []Verdict{
			verdict("film_count", float64(sa.FilmCount), float64(sb.FilmCount)),
			verdict("average_rating", sa.AverageRating, sb.AverageRating),
			verdict("total_votes", float64(sa.TotalVotes), float64(sb.TotalVotes)),
			verdict("career_span", float64(sa.CareerSpan()), float64(sb.CareerSpan())),
		},
		SharedGenres: sharedGenres(profileA.Films, profileB.Films),
	}, nil
}

// Search returns people matching query whose known department is directing.
func (s *Service) Search(ctx context.Context, query string) ([]models.Director, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []models.Director{}, nil
	}

	people, err := s.source.SearchPeople(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("searching directors: %w", err)
	}

	directors := make([]models.Director, 0, len(people))
	for _, p := range people {
		if p.KnownForDepartment == directingDepartment {
			directors = append(directors, p)
		}
	}
	return directors, nil
}

func directedFilms(crew []tmdb.CrewCredit, genreNames map[int]string) []models.Movie {
	seen := make(map[int]bool)
	films := []models.Movie{}
	for _, credit := range crew {
		if credit.Job != directorJob || seen[credit.ID] {
			continue
		}
		seen[credit.ID] = true
		films = append(films, tmdb.HydrateGenres(credit.Movie, genreNames))
	}

	// ISO dates sort as strings; undated films go last.
	sort.SliceStable(films, func(i, j int) bool {
		di, dj := films[i].ReleaseDate, films[j].ReleaseDate
		if di == "" || dj == "" {
			return dj == "" && di != ""
		}
		return di > dj
	})
	return films
}

func verdict(metric string, a, b float64) Verdict {
	v := Verdict{Metric: metric, A: a, B: b, Winner: "tie"}
	switch {
	case a > b:
		v.Winner = "a"
	case b > a:
		v.Winner = "b"
	}
	return v
}

func sharedGenres(a, b []models.Movie) []string {
	inA := map[string]bool{}
	for _, m := range a {
		for _, name := range m.GenreNames() {
			inA[name] = true
		}
	}

	seen := map[string]bool{}
	shared := []string{}
	for _, m := range b {
		for _, name := range m.GenreNames() {
			if inA[name] && !seen[name] {
				seen[name] = true
				shared = append(shared, name)
			}
		}
	}
	sort.Strings(shared)
	return shared
}
