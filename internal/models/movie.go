package models

import (
	"strconv"
	"strings"
	"time"
)

type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Movie is the TMDb movie shape the scorer and the API read. Genres may be
// empty when the provider only returned genre_ids and no genre list was
// available to hydrate them.
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	ReleaseDate      string  `json:"release_date"`
	Genres           []Genre `json:"genres"`
	GenreIDs         []int   `json:"genre_ids,omitempty"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity,omitempty"`
	OriginalLanguage string  `json:"original_language"`
	Overview         string  `json:"overview"`
	PosterPath       *string `json:"poster_path"`
	BackdropPath     *string `json:"backdrop_path,omitempty"`
	Runtime          int     `json:"runtime,omitempty"`
}

func (m Movie) HasGenre(name string) bool {
	for _, g := range m.Genres {
		if strings.EqualFold(g.Name, name) {
			return true
		}
	}
	return false
}

func (m Movie) HasAnyGenre(names ...string) bool {
	for _, name := range names {
		if m.HasGenre(name) {
			return true
		}
	}
	return false
}

func (m Movie) GenreCount() int {
	return len(m.Genres)
}

func (m Movie) GenreNames() []string {
	names := make([]string, 0, len(m.Genres))
	for _, g := range m.Genres {
		names = append(names, g.Name)
	}
	return names
}

// ReleaseYear returns 0 when the release date is missing or not an ISO date.
func (m Movie) ReleaseYear() int {
	t, err := time.Parse("2006-01-02", m.ReleaseDate)
	if err != nil {
		return 0
	}
	return t.Year()
}

// Decade formats the release decade as "1990s", or "" when unknown.
func (m Movie) Decade() string {
	year := m.ReleaseYear()
	if year == 0 {
		return ""
	}
	return DecadeLabel(year)
}

func DecadeLabel(year int) string {
	return strconv.Itoa((year/10)*10) + "s"
}

// CatalogSnapshot is a stored copy of the candidate pool. A zero FetchedAt
// means no snapshot exists.
type CatalogSnapshot struct {
	Movies    []Movie
	FetchedAt time.Time
}
