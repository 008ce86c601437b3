package quiz

import (
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kdimtricp/auteur/internal/models"
)

func TestInitializePreferenceProfile(t *testing.T) {
	p := InitializePreferenceProfile()

	for _, key := range []models.PreferenceKey{models.VisualStyles, models.NarrativeStyles, models.Themes, models.Eras} {
		bucket := p.Bucket(key)
		assert.NotNil(t, bucket, "bucket %s", key)
		assert.Empty(t, bucket, "bucket %s", key)
	}
	assert.NotNil(t, p.FavoredDirectors)
	assert.True(t, p.IsEmpty())
}

func TestUpdatePreferences_Additivity(t *testing.T) {
	option := models.QuizOption{
		ID:            1,
		Text:          "Slow and meditative",
		PreferenceKey: models.NarrativeStyles,
		StyleKeywords: []string{"meditative", "contemplative"},
	}

	p := InitializePreferenceProfile()
	for i := 0; i < 3; i++ {
		p = UpdatePreferences(p, option)
	}

	assert.Equal(t, models.Weights{"meditative": 3, "contemplative": 3}, p.NarrativeStyles)
	assert.Empty(t, p.VisualStyles)
	assert.Empty(t, p.Themes)
	assert.Empty(t, p.Eras)
}

func TestUpdatePreferences_DoesNotMutateInput(t *testing.T) {
	original := InitializePreferenceProfile()
	original.Themes["social"] = 1

	updated := UpdatePreferences(original, models.QuizOption{
		PreferenceKey: models.Themes,
		StyleKeywords: []string{"social", "political"},
	})

	assert.Equal(t, models.Weights{"social": 1}, original.Themes)
	assert.Equal(t, models.Weights{"social": 2, "political": 1}, updated.Themes)
}

func TestUpdatePreferences_NonScorableKeyIsNoOp(t *testing.T) {
	tests := []struct {
		name string
		key  models.PreferenceKey
	}{
		{name: "unknown key", key: models.PreferenceKey("bogus")},
		{name: "empty key", key: ""},
		{name: "eras bucket", key: models.Eras},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := InitializePreferenceProfile()
			p.VisualStyles["noir"] = 2

			got := UpdatePreferences(p, models.QuizOption{
				PreferenceKey: tt.key,
				StyleKeywords: []string{"noir", "1990s"},
			})

			assert.Equal(t, p, got)
		})
	}
}

func TestUpdatePreferences_NormalizesKeywords(t *testing.T) {
	p := UpdatePreferences(InitializePreferenceProfile(), models.QuizOption{
		PreferenceKey: models.VisualStyles,
		StyleKeywords: []string{" Noir", "noir", "", "  ", "Shadowy"},
	})

	assert.Equal(t, models.Weights{"noir": 1, "shadowy": 1}, p.VisualStyles)
}

func TestUpdatePreferences_ZeroValueProfile(t *testing.T) {
	var p models.PreferenceProfile

	got := UpdatePreferences(p, models.QuizOption{
		PreferenceKey: models.Themes,
		StyleKeywords: []string{"eerie"},
	})

	assert.Equal(t, 1, got.Themes["eerie"])
	assert.Nil(t, p.Themes)
}

func TestUpdateDirectorPreferences(t *testing.T) {
	original := InitializePreferenceProfile()

	updated := UpdateDirectorPreferences(original, models.DirectorAnswer{
		DirectorID:    138,
		Era:           " 1990s ",
		PreferenceKey: models.NarrativeStyles,
		StyleKeywords: []string{"nonlinear", "genre-blending"},
	})

	assert.True(t, updated.FavoredDirectors.Contains(138))
	assert.Equal(t, models.Weights{"1990s": 1}, updated.Eras)
	assert.Equal(t, models.Weights{"nonlinear": 1, "genre-blending": 1}, updated.NarrativeStyles)

	assert.True(t, original.IsEmpty(), "input profile must not change")
}

func TestUpdateDirectorPreferences_PartialAnswer(t *testing.T) {
	p := UpdateDirectorPreferences(InitializePreferenceProfile(), models.DirectorAnswer{
		DirectorID:    0,
		PreferenceKey: models.Eras,
		StyleKeywords: []string{"ignored"},
	})

	assert.True(t, p.IsEmpty())

	p = UpdateDirectorPreferences(p, models.DirectorAnswer{DirectorID: 5655})
	p = UpdateDirectorPreferences(p, models.DirectorAnswer{DirectorID: 5655})
	assert.Equal(t, []int{5655}, p.FavoredDirectors.IDs())
	assert.Empty(t, p.Eras)
}

func TestPreferenceProfile_JSONRoundTrip(t *testing.T) {
	p := InitializePreferenceProfile()
	p = UpdatePreferences(p, models.QuizOption{PreferenceKey: models.VisualStyles, StyleKeywords: []string{"noir"}})
	p = UpdateDirectorPreferences(p, models.DirectorAnswer{DirectorID: 525, Era: "2000s"})
	p = UpdateDirectorPreferences(p, models.DirectorAnswer{DirectorID: 138})

	data, err := json.Marshal(p)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"favoredDirectors":[138,525]`)

	var decoded models.PreferenceProfile
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, p, decoded)
}
