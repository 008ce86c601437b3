package recommendation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdimtricp/auteur/internal/models"
	"github.com/kdimtricp/auteur/internal/quiz"
)

func ids(results []MovieScore) []int {
	out := make([]int, 0, len(results))
	for _, r := range results {
		out = append(out, r.Movie.ID)
	}
	return out
}

func TestFindMatchingMovies_EmptyPool(t *testing.T) {
	profile := profileWith(models.Themes, "social")

	assert.Empty(t, FindMatchingMovies(profile, nil, 8))
	assert.Empty(t, FindMatchingMovies(profile, []models.Movie{}, 0))
}

func TestFindMatchingMovies_FiltersZeroScores(t *testing.T) {
	pool := []models.Movie{
		{ID: 1, Genres: genres("Comedy"), OriginalLanguage: "en"},
		{ID: 2, Genres: genres("Western"), VoteAverage: 6.0, VoteCount: 5000},
		{ID: 3, Genres: genres("Drama"), VoteAverage: 6.6, VoteCount: 400},
	}

	got := FindMatchingMovies(quiz.InitializePreferenceProfile(), pool, 8)

	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].Movie.ID)
	for _, r := range got {
		assert.Greater(t, r.Score, 0.0)
	}
}

func TestFindMatchingMovies_OrderingIsStable(t *testing.T) {
	pool := []models.Movie{
		{ID: 1, VoteAverage: 6.6, VoteCount: 400},   // 0.25
		{ID: 2, VoteAverage: 8.0, VoteCount: 2000},  // 0.75
		{ID: 3, VoteAverage: 5.0, VoteCount: 10},    // 0
		{ID: 4, VoteAverage: 7.6, VoteCount: 1500},  // 0.75
		{ID: 5, VoteAverage: 7.2, VoteCount: 700},   // 0.5
		{ID: 6, VoteAverage: 9.0, VoteCount: 90000}, // 0.75
	}

	got := FindMatchingMovies(quiz.InitializePreferenceProfile(), pool, 8)

	assert.Equal(t, []int{2, 4, 6, 5, 1}, ids(got))
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestFindMatchingMovies_CountCap(t *testing.T) {
	pool := make([]models.Movie, 0, 12)
	for i := 1; i <= 12; i++ {
		pool = append(pool, models.Movie{ID: i, VoteAverage: 8.0, VoteCount: 5000})
	}
	profile := quiz.InitializePreferenceProfile()

	tests := []struct {
		name  string
		count int
		want  []int
	}{
		{name: "default count", count: 0, want: []int{1, 2, 3, 4, 5, 6, 7, 8}},
		{name: "negative count", count: -3, want: []int{1, 2, 3, 4, 5, 6, 7, 8}},
		{name: "explicit count", count: 3, want: []int{1, 2, 3}},
		{name: "count above pool", count: 50, want: []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ids(FindMatchingMovies(profile, pool, tt.count)))
		})
	}
}

func TestFindMatchingMovies_PreferenceDrivesRanking(t *testing.T) {
	pool := []models.Movie{
		{ID: 10, Title: "Mad Max: Fury Road", Genres: genres("Action", "Adventure", "Science Fiction"), VoteAverage: 7.6, VoteCount: 22000},
		{ID: 11, Title: "Manchester by the Sea", Genres: genres("Drama"), VoteAverage: 7.5, VoteCount: 6000, OriginalLanguage: "en"},
		{ID: 12, Title: "Whiplash", Genres: genres("Music"), VoteAverage: 8.4, VoteCount: 15000},
	}

	meditative := profileWith(models.NarrativeStyles, "meditative", "contemplative")
	got := FindMatchingMovies(meditative, pool, 8)
	require.NotEmpty(t, got)
	assert.Equal(t, 11, got[0].Movie.ID)

	musical := profileWith(models.Themes, "music")
	got = FindMatchingMovies(musical, pool, 8)
	require.NotEmpty(t, got)
	assert.Equal(t, 12, got[0].Movie.ID)

	kinetic := profileWith(models.VisualStyles, "kinetic")
	got = FindMatchingMovies(kinetic, pool, 1)
	require.Len(t, got, 1)
	assert.Equal(t, 10, got[0].Movie.ID)
}

func TestFindMatchingMovies_LeavesPoolUntouched(t *testing.T) {
	pool := []models.Movie{
		{ID: 1, VoteAverage: 6.6, VoteCount: 400},
		{ID: 2, VoteAverage: 8.0, VoteCount: 2000},
	}
	snapshot := append([]models.Movie(nil), pool...)

	FindMatchingMovies(quiz.InitializePreferenceProfile(), pool, 8)

	assert.Equal(t, snapshot, pool)
}
