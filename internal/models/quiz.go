package models

// PreferenceKey names a bucket of the preference profile.
type PreferenceKey string

const (
	VisualStyles    PreferenceKey = "visualStyles"
	NarrativeStyles PreferenceKey = "narrativeStyles"
	Themes          PreferenceKey = "themes"
	Eras            PreferenceKey = "eras"
)

// ScorableKeys are the buckets quiz options may target. Eras is filled only
// by the director-aware flow.
var ScorableKeys = []PreferenceKey{VisualStyles, NarrativeStyles, Themes}

func (k PreferenceKey) IsScorable() bool {
	switch k {
	case VisualStyles, NarrativeStyles, Themes:
		return true
	}
	return false
}

type QuizOption struct {
	ID            int           `json:"id"`
	Text          string        `json:"text"`
	PreferenceKey PreferenceKey `json:"preferenceKey"`
	StyleKeywords []string      `json:"styleKeywords"`
}

type QuizQuestion struct {
	ID      int          `json:"id"`
	Type    string       `json:"type"`
	Text    string       `json:"text"`
	Options []QuizOption `json:"options"`
}

func (q QuizQuestion) Option(id int) (QuizOption, bool) {
	for _, opt := range q.Options {
		if opt.ID == id {
			return opt, true
		}
	}
	return QuizOption{}, false
}

// DirectorAnswer is the director/era-aware answer used when a user favors a
// director from a profile or comparison page.
type DirectorAnswer struct {
	DirectorID    int           `json:"director_id"`
	Era           string        `json:"era,omitempty"`
	PreferenceKey PreferenceKey `json:"preference_key,omitempty"`
	StyleKeywords []string      `json:"style_keywords,omitempty"`
}
