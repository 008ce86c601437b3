package recommendation

import "strings"

type region struct {
	name   string
	weight float64
}

// regions maps an ISO 639-1 original_language code to the cinema it is
// credited to.
var regions = map[string]region{
	"ja": {name: "Japanese", weight: 1.0},
	"ko": {name: "Korean", weight: 1.0},
	"zh": {name: "Chinese", weight: 1.0},
	"hi": {name: "Indian", weight: 1.0},
	"fr": {name: "French", weight: 1.0},

	"es": {name: "Spanish", weight: 0.75},
	"it": {name: "Italian", weight: 0.75},
	"de": {name: "German", weight: 0.75},

	"pt": {name: "Portuguese", weight: 0.5},
	"tr": {name: "Turkish", weight: 0.5},
	"th": {name: "Thai", weight: 0.5},
	"fa": {name: "Iranian", weight: 0.5},
	"ar": {name: "Arab", weight: 0.5},
}

func lookupRegion(language string) (region, bool) {
	r, ok := regions[strings.ToLower(strings.TrimSpace(language))]
	return r, ok
}

func (r region) reason() string {
	return "Celebrated " + r.name + " cinema"
}
