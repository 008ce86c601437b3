package quiz

import (
	"strings"

	"github.com/kdimtricp/auteur/internal/models"
)

// InitializePreferenceProfile returns a profile with every bucket present and
// empty.
func InitializePreferenceProfile() models.PreferenceProfile {
	return models.PreferenceProfile{
		VisualStyles:     models.Weights{},
		NarrativeStyles:  models.Weights{},
		Themes:           models.Weights{},
		Eras:             models.Weights{},
		FavoredDirectors: models.DirectorSet{},
	}
}

// UpdatePreferences folds one answered option into profile and returns the
// updated copy. The input profile is never modified. An option whose key is
// not a scorable bucket leaves the profile unchanged.
func UpdatePreferences(profile models.PreferenceProfile, option models.QuizOption) models.PreferenceProfile {
	if !option.PreferenceKey.IsScorable() {
		return profile
	}

	next := profile.Clone()
	addKeywords(next.Bucket(option.PreferenceKey), option.StyleKeywords)
	return next
}

// UpdateDirectorPreferences records a favored director. The era, when set, is
// counted in the eras bucket and style keywords are folded in the same way
// UpdatePreferences folds them.
func UpdateDirectorPreferences(profile models.PreferenceProfile, answer models.DirectorAnswer) models.PreferenceProfile {
	next := profile.Clone()

	if answer.DirectorID > 0 {
		next.FavoredDirectors.Add(answer.DirectorID)
	}
	if era := strings.TrimSpace(answer.Era); era != "" {
		next.Eras[era]++
	}
	if answer.PreferenceKey.IsScorable() {
		addKeywords(next.Bucket(answer.PreferenceKey), answer.StyleKeywords)
	}

	return next
}

func addKeywords(bucket models.Weights, keywords []string) {
	seen := make(map[string]bool, len(keywords))
	for _, kw := range keywords {
		kw = strings.ToLower(strings.TrimSpace(kw))
		if kw == "" || seen[kw] {
			continue
		}
		seen[kw] = true
		bucket[kw]++
	}
}
