package models

import (
	"sort"

	"github.com/goccy/go-json"
)

// Weights maps a lowercase keyword to the number of times it was chosen.
type Weights map[string]int

func (w Weights) clone() Weights {
	out := make(Weights, len(w))
	for k, v := range w {
		out[k] = v
	}
	return out
}

// DirectorSet is a set of TMDb person IDs. It encodes as a sorted JSON array.
type DirectorSet map[int]struct{}

func NewDirectorSet(ids ...int) DirectorSet {
	s := make(DirectorSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s DirectorSet) Add(id int) {
	s[id] = struct{}{}
}

func (s DirectorSet) Contains(id int) bool {
	_, ok := s[id]
	return ok
}

func (s DirectorSet) IDs() []int {
	ids := make([]int, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func (s DirectorSet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.IDs())
}

func (s *DirectorSet) UnmarshalJSON(data []byte) error {
	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		return err
	}
	*s = NewDirectorSet(ids...)
	return nil
}

// PreferenceProfile is the accumulated taste of one quiz session. Callers
// treat it as a value: updates return a new profile rather than mutating
// the one a reader may hold.
type PreferenceProfile struct {
	VisualStyles     Weights     `json:"visualStyles"`
	NarrativeStyles  Weights     `json:"narrativeStyles"`
	Themes           Weights     `json:"themes"`
	Eras             Weights     `json:"eras"`
	FavoredDirectors DirectorSet `json:"favoredDirectors"`
}

// Bucket returns the weights for key, or nil for an unknown key.
func (p PreferenceProfile) Bucket(key PreferenceKey) Weights {
	switch key {
	case VisualStyles:
		return p.VisualStyles
	case NarrativeStyles:
		return p.NarrativeStyles
	case Themes:
		return p.Themes
	case Eras:
		return p.Eras
	}
	return nil
}

// HasAny reports whether any of the keywords has a non-zero weight in the
// bucket named by key.
func (p PreferenceProfile) HasAny(key PreferenceKey, keywords ...string) bool {
	bucket := p.Bucket(key)
	for _, kw := range keywords {
		if bucket[kw] > 0 {
			return true
		}
	}
	return false
}

func (p PreferenceProfile) Clone() PreferenceProfile {
	favored := make(DirectorSet, len(p.FavoredDirectors))
	for id := range p.FavoredDirectors {
		favored[id] = struct{}{}
	}
	return PreferenceProfile{
		VisualStyles:     p.VisualStyles.clone(),
		NarrativeStyles:  p.NarrativeStyles.clone(),
		Themes:           p.Themes.clone(),
		Eras:             p.Eras.clone(),
		FavoredDirectors: favored,
	}
}

// IsEmpty reports whether no keyword, era or director has been recorded.
func (p PreferenceProfile) IsEmpty() bool {
	return len(p.VisualStyles) == 0 && len(p.NarrativeStyles) == 0 &&
		len(p.Themes) == 0 && len(p.Eras) == 0 && len(p.FavoredDirectors) == 0
}
