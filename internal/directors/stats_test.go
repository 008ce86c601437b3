package directors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/kdimtricp/auteur/internal/models"
)

func TestComputeStats_Empty(t *testing.T) {
	stats := ComputeStats(nil)

	assert.Zero(t, stats.FilmCount)
	assert.Zero(t, stats.AverageRating)
	assert.Nil(t, stats.BestFilm)
	assert.NotNil(t, stats.TopGenres)
	assert.NotNil(t, stats.Decades)
	assert.Zero(t, stats.CareerSpan())
}

func TestComputeStats_BestFilmNeedsVotes(t *testing.T) {
	stats := ComputeStats([]models.Movie{
		{ID: 1, Title: "Short", VoteAverage: 9.8, VoteCount: 12},
		{ID: 2, Title: "Feature", VoteAverage: 7.1, VoteCount: 800},
	})

	if assert.NotNil(t, stats.BestFilm) {
		assert.Equal(t, "Feature", stats.BestFilm.Title)
	}
}

func TestComputeStats_TopGenresCapped(t *testing.T) {
	var genres []models.Genre
	for i, name := range []string{"A", "B", "C", "D", "E", "F", "G"} {
		genres = append(genres, models.Genre{ID: i, Name: name})
	}
	stats := ComputeStats([]models.Movie{{Genres: genres}, {Genres: genres[5:]}})

	assert.Len(t, stats.TopGenres, 5)
	assert.Equal(t, []models.GenreCount{
		{Name: "F", Count: 2},
		{Name: "G", Count: 2},
		{Name: "A", Count: 1},
		{Name: "B", Count: 1},
		{Name: "C", Count: 1},
	}, stats.TopGenres)
}

func TestEraOf(t *testing.T) {
	tests := []struct {
		name    string
		decades map[string]int
		want    string
	}{
		{"none", map[string]int{}, ""},
		{"single", map[string]int{"1970s": 3}, "1970s"},
		{"most frequent", map[string]int{"1970s": 1, "1980s": 4, "1990s": 2}, "1980s"},
		{"tie goes to later decade", map[string]int{"1990s": 2, "2000s": 2}, "2000s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EraOf(models.DirectorStats{Decades: tt.decades}))
		})
	}
}
