package recommendation

import "github.com/kdimtricp/auteur/internal/models"

const (
	combinationThreshold  = 2.0
	combinationMinReasons = 3
	combinationBonus      = 0.5
	combinationReason     = "Combines multiple elements you enjoy"
)

// MovieScore is one ranked recommendation. Movie is the candidate exactly
// as it appeared in the pool.
type MovieScore struct {
	Movie        models.Movie `json:"movie"`
	Score        float64      `json:"score"`
	MatchReasons []string     `json:"matchReasons"`
}

type qualityTier struct {
	minRating float64
	minVotes  int
	bonus     float64
	reason    string
}

// First matching tier wins.
var qualityTiers = []qualityTier{
	{minRating: 7.5, minVotes: 1000, bonus: 0.75, reason: "Critically acclaimed"},
	{minRating: 7.0, minVotes: 500, bonus: 0.5, reason: "Highly rated"},
	{minRating: 6.5, minVotes: 300, bonus: 0.25, reason: "Well reviewed"},
}

type reasons struct {
	list []string
	seen map[string]bool
}

func (r *reasons) add(reason string) {
	if r.seen == nil {
		r.seen = make(map[string]bool)
	}
	if r.seen[reason] {
		return
	}
	r.seen[reason] = true
	r.list = append(r.list, reason)
}

// CalculateMovieScore runs the style-affinity rules, the regional table,
// the quality tiers and the combination bonus against one movie. Missing or
// malformed movie fields fail their conditions and contribute nothing. The
// profile is only read.
func CalculateMovieScore(movie models.Movie, profile models.PreferenceProfile) MovieScore {
	var (
		score float64
		why   reasons
	)

	for _, rule := range styleRules {
		if bonus, ok := rule.apply(movie, profile); ok {
			score += bonus
			why.add(rule.reason)
		}
	}

	if r, ok := lookupRegion(movie.OriginalLanguage); ok {
		score += r.weight
		why.add(r.reason())
	}

	for _, tier := range qualityTiers {
		if movie.VoteAverage >= tier.minRating && movie.VoteCount > tier.minVotes {
			score += tier.bonus
			why.add(tier.reason)
			break
		}
	}

	if score > combinationThreshold && len(why.list) >= combinationMinReasons {
		score += combinationBonus
		why.add(combinationReason)
	}

	matchReasons := why.list
	if matchReasons == nil {
		matchReasons = []string{}
	}

	return MovieScore{
		Movie:        movie,
		Score:        score,
		MatchReasons: matchReasons,
	}
}
