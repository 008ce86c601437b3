package quiz

import "github.com/kdimtricp/auteur/internal/models"

// StyleOption is one candidate answer of a template.
type StyleOption struct {
	Keywords    []string
	Description string
}

// Template is an author-defined question from which runtime questions are
// instantiated.
type Template struct {
	Type    string
	Text    string
	Options []StyleOption
}

// TemplateBuckets maps a template type to the profile bucket its answers feed.
// A type missing from this table is never asked.
var TemplateBuckets = map[string]models.PreferenceKey{
	"visual_style":        models.VisualStyles,
	"color_palette":       models.VisualStyles,
	"camera_work":         models.VisualStyles,
	"production_design":   models.VisualStyles,
	"pacing_preference":   models.NarrativeStyles,
	"storytelling":        models.NarrativeStyles,
	"narrative_structure": models.NarrativeStyles,
	"character_focus":     models.NarrativeStyles,
	"theme_preference":    models.Themes,
	"mood":                models.Themes,
	"subject_matter":      models.Themes,
	"emotional_tone":      models.Themes,
}

// DefaultTemplates returns the built-in question library. The slice is
// freshly built on every call, so callers may reorder it.
func DefaultTemplates() []Template {
	return []Template{
		{
			Type: "visual_style",
			Text: "Which visual approach draws you in the most?",
			Options: []StyleOption{
				{Keywords: []string{"symmetrical", "meticulous", "pastel", "controlled"}, Description: "Perfectly symmetrical frames where every detail is deliberately placed"},
				{Keywords: []string{"naturalistic", "handheld", "realistic", "grounded"}, Description: "Raw, naturalistic images that feel like life caught on camera"},
				{Keywords: []string{"poetic", "dreamlike", "lyrical", "ethereal"}, Description: "Dreamlike, poetic images that linger like a memory"},
				{Keywords: []string{"kinetic", "dynamic", "energetic", "fast-cut"}, Description: "Kinetic camera work that throws you into the action"},
				{Keywords: []string{"vibrant", "colorful", "stylized", "bold"}, Description: "Bold, saturated colors and a heightened, stylized world"},
				{Keywords: []string{"noir", "shadowy", "high-contrast", "moody"}, Description: "Deep shadows and stark contrast straight out of film noir"},
			},
		},
		{
			Type: "color_palette",
			Text: "What kind of color palette do you want on screen?",
			Options: []StyleOption{
				{Keywords: []string{"vibrant", "colorful", "saturated"}, Description: "Explosive, saturated color in every frame"},
				{Keywords: []string{"noir", "shadowy", "monochrome"}, Description: "Monochrome or near-monochrome shadows"},
				{Keywords: []string{"naturalistic", "earthy", "realistic"}, Description: "Earthy, natural tones of the real world"},
				{Keywords: []string{"pastel", "symmetrical", "meticulous"}, Description: "Curated pastel palettes arranged with precision"},
				{Keywords: []string{"dreamlike", "poetic", "golden-hour"}, Description: "Soft golden light that feels like a half-remembered dream"},
				{Keywords: []string{"neon", "stylized", "high-contrast"}, Description: "Neon glow cutting through the darkness"},
			},
		},
		{
			Type: "camera_work",
			Text: "How should the camera move?",
			Options: []StyleOption{
				{Keywords: []string{"controlled", "meticulous", "static"}, Description: "Locked-off, carefully composed static shots"},
				{Keywords: []string{"handheld", "naturalistic", "intimate"}, Description: "An intimate handheld camera that stays close to the characters"},
				{Keywords: []string{"kinetic", "dynamic", "long-take"}, Description: "Sweeping long takes that never let up"},
				{Keywords: []string{"lyrical", "poetic", "floating"}, Description: "Floating, lyrical movement that drifts with the mood"},
				{Keywords: []string{"energetic", "dynamic", "fast-cut", "kinetic"}, Description: "Rapid cutting and whip pans"},
				{Keywords: []string{"shadowy", "noir", "voyeuristic"}, Description: "Voyeuristic angles peering out from the shadows"},
			},
		},
		{
			Type: "production_design",
			Text: "Which kind of world do you want to step into?",
			Options: []StyleOption{
				{Keywords: []string{"stylized", "vibrant", "whimsical"}, Description: "A handcrafted storybook world full of whimsy"},
				{Keywords: []string{"realistic", "naturalistic", "lived-in"}, Description: "Lived-in places that look untouched by a set designer"},
				{Keywords: []string{"symmetrical", "meticulous", "dollhouse"}, Description: "Dollhouse-like sets where everything lines up just so"},
				{Keywords: []string{"noir", "rain-soaked", "shadowy"}, Description: "Rain-soaked city streets at night"},
				{Keywords: []string{"dreamlike", "surreal", "poetic"}, Description: "Surreal spaces that bend the rules of reality"},
				{Keywords: []string{"futuristic", "colorful", "stylized", "sci-fi"}, Description: "Sleek futuristic worlds of light and glass"},
			},
		},
		{
			Type: "pacing_preference",
			Text: "What pace do you enjoy most in a story?",
			Options: []StyleOption{
				{Keywords: []string{"meditative", "contemplative", "slow-burn", "patient"}, Description: "Slow and meditative, letting every moment breathe"},
				{Keywords: []string{"tense", "urgent", "real-time"}, Description: "Relentless tension that unfolds almost in real time"},
				{Keywords: []string{"fast-paced", "propulsive", "urgent"}, Description: "Propulsive pacing that never slows down"},
				{Keywords: []string{"slow-burn", "tense", "building"}, Description: "A slow burn that builds to an explosive finish"},
				{Keywords: []string{"episodic", "unconventional", "wandering"}, Description: "Loose and episodic, wandering wherever it likes"},
				{Keywords: []string{"measured", "contemplative", "deliberate"}, Description: "Measured and deliberate, every scene earning its place"},
			},
		},
		{
			Type: "storytelling",
			Text: "How do you like a story to be told?",
			Options: []StyleOption{
				{Keywords: []string{"nonlinear", "fragmented", "puzzle"}, Description: "Fractured timelines you piece together like a puzzle"},
				{Keywords: []string{"linear", "classical", "character-driven"}, Description: "A clear, classical arc built around its characters"},
				{Keywords: []string{"real-time", "urgent", "single-night"}, Description: "Everything happening over one frantic night"},
				{Keywords: []string{"genre-blending", "unconventional", "playful"}, Description: "Genre-hopping stories that refuse to be labeled"},
				{Keywords: []string{"experimental", "non-linear", "abstract"}, Description: "Experimental structures that break the rules"},
				{Keywords: []string{"meditative", "observational", "contemplative"}, Description: "Quiet observation with little explained"},
			},
		},
		{
			Type: "narrative_structure",
			Text: "Which structure keeps you most engaged?",
			Options: []StyleOption{
				{Keywords: []string{"non-linear", "twist", "puzzle"}, Description: "A twisty puzzle box with a final reveal"},
				{Keywords: []string{"anthology", "fragmented", "interwoven"}, Description: "Interwoven stories that slowly converge"},
				{Keywords: []string{"real-time", "tense", "countdown"}, Description: "A ticking-clock countdown"},
				{Keywords: []string{"experimental", "genre-blending", "meta"}, Description: "Self-aware storytelling that plays with its own form"},
				{Keywords: []string{"contemplative", "elliptical", "slow-burn"}, Description: "Elliptical scenes that leave gaps for you to fill"},
				{Keywords: []string{"classical", "three-act", "linear"}, Description: "A classic three-act story, cleanly told"},
			},
		},
		{
			Type: "character_focus",
			Text: "Who do you want to follow through a story?",
			Options: []StyleOption{
				{Keywords: []string{"ensemble", "interwoven", "fragmented"}, Description: "A sprawling ensemble whose paths keep crossing"},
				{Keywords: []string{"lone-protagonist", "tense", "urgent"}, Description: "A lone protagonist racing against the odds"},
				{Keywords: []string{"contemplative", "meditative", "quiet"}, Description: "A quiet soul reflecting on their life"},
				{Keywords: []string{"unconventional", "antihero", "genre-blending"}, Description: "An antihero who fits no category"},
				{Keywords: []string{"unreliable-narrator", "puzzle", "nonlinear"}, Description: "An unreliable narrator you can never fully trust"},
				{Keywords: []string{"duo", "real-time", "banter"}, Description: "Two strangers thrown together for one long night"},
			},
		},
		{
			Type: "theme_preference",
			Text: "Which themes resonate with you most?",
			Options: []StyleOption{
				{Keywords: []string{"existential", "atmospheric", "cosmic"}, Description: "Existential questions about our place in the universe"},
				{Keywords: []string{"social", "political", "class"}, Description: "Society, power, and class struggle"},
				{Keywords: []string{"psychological", "introspective", "identity"}, Description: "Identity and the inner workings of the mind"},
				{Keywords: []string{"music", "musical", "rhythmic", "passion"}, Description: "A passion for music and the people who make it"},
				{Keywords: []string{"family", "relationships", "social"}, Description: "Family bonds and fractured relationships"},
				{Keywords: []string{"eerie", "atmospheric", "dread"}, Description: "Creeping dread and the unknown"},
			},
		},
		{
			Type: "mood",
			Text: "What mood do you want a film to leave you in?",
			Options: []StyleOption{
				{Keywords: []string{"eerie", "unsettled", "atmospheric"}, Description: "Unsettled, glancing over your shoulder"},
				{Keywords: []string{"uplifted", "musical", "joyful", "rhythmic"}, Description: "Uplifted and humming on the way out"},
				{Keywords: []string{"haunted", "introspective", "psychological"}, Description: "Haunted by a character you can't shake"},
				{Keywords: []string{"angry", "political", "social"}, Description: "Fired up about the state of the world"},
				{Keywords: []string{"awestruck", "existential", "cosmic"}, Description: "Awestruck and a little smaller than before"},
				{Keywords: []string{"melancholic", "introspective", "bittersweet"}, Description: "Bittersweet and quietly reflective"},
			},
		},
		{
			Type: "subject_matter",
			Text: "Which subject would you pick for tonight?",
			Options: []StyleOption{
				{Keywords: []string{"class", "inequality", "social"}, Description: "Rich and poor colliding under one roof"},
				{Keywords: []string{"political", "power", "corruption"}, Description: "Power, corruption, and the people who fight it"},
				{Keywords: []string{"space", "existential", "atmospheric"}, Description: "A lonely journey into deep space"},
				{Keywords: []string{"musicians", "music", "rhythmic"}, Description: "Musicians chasing greatness"},
				{Keywords: []string{"obsession", "psychological", "character-study"}, Description: "An obsession that slowly consumes someone"},
				{Keywords: []string{"haunting", "eerie", "supernatural"}, Description: "A haunting that may or may not be real"},
			},
		},
		{
			Type: "emotional_tone",
			Text: "Which emotional tone suits you best?",
			Options: []StyleOption{
				{Keywords: []string{"dread", "eerie", "atmospheric"}, Description: "Slow, creeping dread"},
				{Keywords: []string{"euphoric", "musical", "rhythmic"}, Description: "Euphoric and full of rhythm"},
				{Keywords: []string{"raw", "character-study", "psychological"}, Description: "Raw and unflinchingly personal"},
				{Keywords: []string{"righteous", "social", "political"}, Description: "Righteous and socially charged"},
				{Keywords: []string{"wistful", "introspective", "existential"}, Description: "Wistful and searching"},
				{Keywords: []string{"intense", "psychological", "obsessive"}, Description: "Intense, claustrophobic, obsessive"},
			},
		},
	}
}
