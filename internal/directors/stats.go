package directors

import (
	"math"
	"sort"

	"github.com/kdimtricp/auteur/internal/models"
)

const (
	topGenreCount = 5
	// bestFilmMinVotes keeps a barely rated short from being a director's
	// best film.
	bestFilmMinVotes = 50
)

// ComputeStats summarizes a filmography. Unrated films (no votes) count
// towards FilmCount and the decades but not the average rating.
func ComputeStats(films []models.Movie) models.DirectorStats {
	stats := models.DirectorStats{
		FilmCount: len(films),
		TopGenres: []models.GenreCount{},
		Decades:   map[string]int{},
	}

	var ratingSum float64
	var rated int
	genreCounts := map[string]int{}

	for i := range films {
		film := films[i]

		if film.VoteCount > 0 {
			ratingSum += film.VoteAverage
			rated++
			stats.TotalVotes += film.VoteCount
		}

		if year := film.ReleaseYear(); year > 0 {
			if stats.FirstYear == 0 || year < stats.FirstYear {
				stats.FirstYear = year
			}
			if year > stats.LastYear {
				stats.LastYear = year
			}
			stats.Decades[models.DecadeLabel(year)]++
		}

		for _, name := range film.GenreNames() {
			genreCounts[name]++
		}

		if film.VoteCount >= bestFilmMinVotes &&
			(stats.BestFilm == nil || film.VoteAverage > stats.BestFilm.VoteAverage) {
			stats.BestFilm = &films[i]
		}
	}

	if rated > 0 {
		stats.AverageRating = math.Round(ratingSum/float64(rated)*100) / 100
	}

	for name, count := range genreCounts {
		stats.TopGenres = append(stats.TopGenres, models.GenreCount{Name: name, Count: count})
	}
	sort.Slice(stats.TopGenres, func(i, j int) bool {
		a, b := stats.TopGenres[i], stats.TopGenres[j]
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Name < b.Name
	})
	if len(stats.TopGenres) > topGenreCount {
		stats.TopGenres = stats.TopGenres[:topGenreCount]
	}

	return stats
}

// EraOf returns the decade a director was most active in, such as "1990s".
// Ties go to the later decade. It returns "" when no film is dated.
func EraOf(stats models.DirectorStats) string {
	era, best := "", 0
	for decade, count := range stats.Decades {
		if count > best || (count == best && decade > era) {
			era, best = decade, count
		}
	}
	return era
}
