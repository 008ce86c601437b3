package recommendation

import "github.com/kdimtricp/auteur/internal/models"

const styleBonus = 1.5

// styleRule awards styleBonus when the profile bucket holds any of the
// keywords and the movie satisfies matches. kicker adds an optional extra on
// top of the base bonus.
type styleRule struct {
	bucket   models.PreferenceKey
	keywords []string
	matches  func(m models.Movie) bool
	kicker   func(m models.Movie) float64
	reason   string
}

func (r styleRule) apply(m models.Movie, p models.PreferenceProfile) (float64, bool) {
	if !p.HasAny(r.bucket, r.keywords...) || !r.matches(m) {
		return 0, false
	}
	score := styleBonus
	if r.kicker != nil {
		score += r.kicker(m)
	}
	return score, true
}

func bonusIf(amount float64, cond func(m models.Movie) bool) func(m models.Movie) float64 {
	return func(m models.Movie) float64 {
		if cond(m) {
			return amount
		}
		return 0
	}
}

func rated(m models.Movie, threshold float64) bool {
	return m.VoteAverage >= threshold
}

var styleRules = []styleRule{
	// visual
	{
		bucket:   models.VisualStyles,
		keywords: []string{"symmetrical", "meticulous", "controlled"},
		matches: func(m models.Movie) bool {
			return m.HasAnyGenre("Drama", "Animation") && rated(m, 7.5)
		},
		reason: "Meticulously composed visuals",
	},
	{
		bucket:   models.VisualStyles,
		keywords: []string{"naturalistic", "handheld", "realistic"},
		matches: func(m models.Movie) bool {
			return m.HasGenre("Documentary") || (m.HasGenre("Drama") && !m.HasGenre("Fantasy"))
		},
		reason: "Naturalistic, grounded visual style",
	},
	{
		bucket:   models.VisualStyles,
		keywords: []string{"poetic", "dreamlike", "lyrical"},
		matches: func(m models.Movie) bool {
			return m.HasAnyGenre("Fantasy", "Drama")
		},
		reason: "Poetic, dreamlike imagery",
	},
	{
		bucket:   models.VisualStyles,
		keywords: []string{"kinetic", "dynamic", "energetic"},
		matches: func(m models.Movie) bool {
			return m.HasAnyGenre("Action", "Thriller")
		},
		reason: "Kinetic, high-energy visuals",
	},
	{
		bucket:   models.VisualStyles,
		keywords: []string{"vibrant", "colorful", "stylized"},
		matches: func(m models.Movie) bool {
			return m.HasAnyGenre("Animation", "Fantasy")
		},
		reason: "Vibrant, stylized color palette",
	},
	{
		bucket:   models.VisualStyles,
		keywords: []string{"noir", "shadowy", "high-contrast"},
		matches: func(m models.Movie) bool {
			return m.HasAnyGenre("Thriller", "Crime")
		},
		kicker: bonusIf(0.5, func(m models.Movie) bool { return m.HasGenre("Film-Noir") }),
		reason: "Moody noir atmosphere",
	},

	// narrative
	{
		bucket:   models.NarrativeStyles,
		keywords: []string{"nonlinear", "non-linear", "fragmented", "puzzle"},
		matches: func(m models.Movie) bool {
			return m.HasAnyGenre("Mystery", "Thriller")
		},
		kicker: bonusIf(0.5, func(m models.Movie) bool { return m.GenreCount() >= 3 }),
		reason: "Complex, non-linear storytelling",
	},
	{
		bucket:   models.NarrativeStyles,
		keywords: []string{"real-time", "urgent", "tense"},
		matches: func(m models.Movie) bool {
			return m.HasAnyGenre("Thriller", "Crime")
		},
		reason: "Tense, real-time momentum",
	},
	{
		bucket:   models.NarrativeStyles,
		keywords: []string{"meditative", "contemplative", "slow-burn"},
		matches: func(m models.Movie) bool {
			return m.HasGenre("Drama") && rated(m, 7.0)
		},
		kicker: bonusIf(0.5, func(m models.Movie) bool { return !m.HasGenre("Action") }),
		reason: "Meditative, contemplative pacing",
	},
	{
		bucket:   models.NarrativeStyles,
		keywords: []string{"genre-blending", "unconventional", "experimental"},
		matches: func(m models.Movie) bool {
			return m.GenreCount() >= 3
		},
		reason: "Bold genre-blending narrative",
	},

	// themes
	{
		bucket:   models.Themes,
		keywords: []string{"atmospheric", "existential", "eerie"},
		matches: func(m models.Movie) bool {
			return m.HasAnyGenre("Horror", "Science Fiction")
		},
		reason: "Atmospheric, existential themes",
	},
	{
		bucket:   models.Themes,
		keywords: []string{"musical", "rhythmic", "music"},
		matches: func(m models.Movie) bool {
			return m.HasAnyGenre("Music", "Musical", "Drama")
		},
		kicker: bonusIf(1.0, func(m models.Movie) bool { return m.HasAnyGenre("Music", "Musical") }),
		reason: "Music-driven storytelling",
	},
	{
		bucket:   models.Themes,
		keywords: []string{"psychological", "introspective", "character-study"},
		matches: func(m models.Movie) bool {
			return m.HasGenre("Drama") && rated(m, 7.0)
		},
		kicker: bonusIf(0.5, func(m models.Movie) bool { return m.HasGenre("Thriller") }),
		reason: "Deep psychological exploration",
	},
	{
		bucket:   models.Themes,
		keywords: []string{"social", "political", "class"},
		matches: func(m models.Movie) bool {
			return m.HasAnyGenre("Drama", "Documentary")
		},
		reason: "Socially conscious themes",
	},
}
