package quiz

import (
	"github.com/rs/zerolog"

	"github.com/kdimtricp/auteur/internal/models"
)

const (
	DefaultQuestionCount = 5
	DefaultOptionCount   = 4
)

// Generator builds randomized, category-balanced question sets from a
// template library. It holds no per-session state and is safe for
// concurrent use when its Source is.
type Generator struct {
	templates []Template
	buckets   map[string]models.PreferenceKey
	src       Source
	logger    zerolog.Logger
}

type Option func(*Generator)

func WithSource(src Source) Option {
	return func(g *Generator) {
		if src != nil {
			g.src = src
		}
	}
}

func WithTemplates(templates []Template) Option {
	return func(g *Generator) {
		g.templates = templates
	}
}

func WithBuckets(buckets map[string]models.PreferenceKey) Option {
	return func(g *Generator) {
		g.buckets = buckets
	}
}

//nolint:gocritic // logger passed by value is acceptable for zerolog
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger.With().Str("component", "quiz").Logger()
	}
}

func NewGenerator(opts ...Option) *Generator {
	g := &Generator{
		templates: DefaultTemplates(),
		buckets:   TemplateBuckets,
		src:       DefaultSource(),
		logger:    zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

type selection struct {
	template Template
	key      models.PreferenceKey
}

// GenerateQuestions returns at most questionCount questions. Roughly 30% come
// from visual templates, 30% from narrative templates, and the rest from
// theme templates. Each question carries optionCount or optionCount+1 options.
// Non-positive arguments fall back to the defaults. An empty result means no
// usable template was found and should be reported as a generation failure.
func (g *Generator) GenerateQuestions(questionCount, optionCount int) []models.QuizQuestion {
	if questionCount <= 0 {
		questionCount = DefaultQuestionCount
	}
	if optionCount <= 0 {
		optionCount = DefaultOptionCount
	}

	byBucket := g.partition()
	for _, key := range models.ScorableKeys {
		shuffle(g.src, byBucket[key])
	}

	visualCount := questionCount * 3 / 10
	narrativeCount := questionCount * 3 / 10
	themeCount := questionCount - visualCount - narrativeCount

	selected := make([]selection, 0, questionCount)
	selected = append(selected, take(byBucket[models.VisualStyles], visualCount)...)
	selected = append(selected, take(byBucket[models.NarrativeStyles], narrativeCount)...)
	selected = append(selected, take(byBucket[models.Themes], themeCount)...)
	shuffle(g.src, selected)

	questions := make([]models.QuizQuestion, 0, len(selected))
	for _, sel := range selected {
		n := optionCount
		if coinFlip(g.src) {
			n++
		}

		options := g.buildOptions(sel, n)
		if len(options) == 0 {
			g.logger.Warn().Str("type", sel.template.Type).Msg("template has no options, dropping question")
			continue
		}

		questions = append(questions, models.QuizQuestion{
			ID:      len(questions) + 1,
			Type:    sel.template.Type,
			Text:    sel.template.Text,
			Options: options,
		})
	}

	if len(questions) < questionCount {
		g.logger.Debug().
			Int("requested", questionCount).
			Int("generated", len(questions)).
			Msg("generated fewer questions than requested")
	}

	return questions
}

func (g *Generator) partition() map[models.PreferenceKey][]selection {
	byBucket := make(map[models.PreferenceKey][]selection, len(models.ScorableKeys))
	for _, tmpl := range g.templates {
		key, ok := g.buckets[tmpl.Type]
		if !ok || !key.IsScorable() {
			g.logger.Warn().Str("type", tmpl.Type).Msg("template type has no scorable bucket, skipping")
			continue
		}
		byBucket[key] = append(byBucket[key], selection{template: tmpl, key: key})
	}
	return byBucket
}

func (g *Generator) buildOptions(sel selection, n int) []models.QuizOption {
	styles := make([]StyleOption, len(sel.template.Options))
	copy(styles, sel.template.Options)
	shuffle(g.src, styles)

	if n > len(styles) {
		n = len(styles)
	}

	options := make([]models.QuizOption, 0, n)
	for i := 0; i < n; i++ {
		keywords := make([]string, len(styles[i].Keywords))
		copy(keywords, styles[i].Keywords)

		options = append(options, models.QuizOption{
			ID:            i + 1,
			Text:          styles[i].Description,
			PreferenceKey: sel.key,
			StyleKeywords: keywords,
		})
	}
	return options
}

func take(items []selection, n int) []selection {
	if n > len(items) {
		n = len(items)
	}
	if n < 0 {
		n = 0
	}
	return items[:n]
}
