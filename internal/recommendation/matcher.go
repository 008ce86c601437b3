package recommendation

import (
	"sort"

	"github.com/kdimtricp/auteur/internal/models"
)

const DefaultRecommendationCount = 8

// FindMatchingMovies scores every movie in pool and returns at most count
// positively scored results, highest first. Equal scores keep pool order.
// A non-positive count falls back to DefaultRecommendationCount.
func FindMatchingMovies(profile models.PreferenceProfile, pool []models.Movie, count int) []MovieScore {
	if count <= 0 {
		count = DefaultRecommendationCount
	}

	scored := make([]MovieScore, 0, len(pool))
	for _, movie := range pool {
		s := CalculateMovieScore(movie, profile)
		if s.Score <= 0 {
			continue
		}
		scored = append(scored, s)
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > count {
		scored = scored[:count]
	}
	return scored
}
