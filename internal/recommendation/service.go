package recommendation

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/kdimtricp/auteur/internal/logging"
	"github.com/kdimtricp/auteur/internal/metrics"
	"github.com/kdimtricp/auteur/internal/models"
	"github.com/kdimtricp/auteur/internal/quiz"
)

var (
	ErrSessionNotFound    = errors.New("quiz session not found")
	ErrNoQuestions        = errors.New("no quiz questions could be generated")
	ErrQuizComplete       = errors.New("quiz is already complete")
	ErrQuizIncomplete     = errors.New("quiz is not complete yet")
	ErrQuestionOutOfOrder = errors.New("answer does not belong to the current question")
	ErrUnknownOption      = errors.New("option does not exist for this question")
	ErrNoCatalog          = errors.New("no movie catalog configured")
)

// Catalog supplies the candidate pool the scorer ranks.
type Catalog interface {
	GetTopRatedMovies(ctx context.Context) ([]models.Movie, error)
}

const DefaultSessionTTL = 2 * time.Hour

type Config struct {
	QuestionCount       int
	OptionCount         int
	RecommendationCount int
	SessionTTL          time.Duration
}

type Service struct {
	generator  *quiz.Generator
	catalog    Catalog
	cfg        Config
	logger     zerolog.Logger
	now        func() time.Time
	sessions   map[string]*Session
	sessionsMu sync.RWMutex
}

//nolint:gocritic // zerolog.Logger is passed by value
func NewService(generator *quiz.Generator, catalog Catalog, cfg Config, logger zerolog.Logger) *Service {
	if cfg.QuestionCount <= 0 {
		cfg.QuestionCount = quiz.DefaultQuestionCount
	}
	if cfg.OptionCount <= 0 {
		cfg.OptionCount = quiz.DefaultOptionCount
	}
	if cfg.RecommendationCount <= 0 {
		cfg.RecommendationCount = DefaultRecommendationCount
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if generator == nil {
		generator = quiz.NewGenerator(quiz.WithLogger(logger))
	}

	return &Service{
		generator: generator,
		catalog:   catalog,
		cfg:       cfg,
		logger:    logger.With().Str("component", "recommendation").Logger(),
		now:       time.Now,
		sessions:  make(map[string]*Session),
	}
}

// GenerateQuestions is the stateless variant of StartSession.
func (s *Service) GenerateQuestions(questionCount, optionCount int) ([]models.QuizQuestion, error) {
	if questionCount <= 0 {
		questionCount = s.cfg.QuestionCount
	}
	if optionCount <= 0 {
		optionCount = s.cfg.OptionCount
	}

	questions := s.generator.GenerateQuestions(questionCount, optionCount)
	if len(questions) == 0 {
		metrics.QuizGenerationFailures.Inc()
		return nil, ErrNoQuestions
	}
	return questions, nil
}

func (s *Service) StartSession(ctx context.Context) (*SessionSnapshot, error) {
	questions, err := s.GenerateQuestions(s.cfg.QuestionCount, s.cfg.OptionCount)
	if err != nil {
		s.logger.Warn().Msg("question generation produced nothing")
		return nil, err
	}

	now := s.now()
	session := &Session{
		ID:        uuid.New().String(),
		Questions: questions,
		Answers:   []Answer{},
		Profile:   quiz.InitializePreferenceProfile(),
		Status:    StatusInProgress,
		StartedAt: now,
		UpdatedAt: now,
	}

	s.sessionsMu.Lock()
	s.sessions[session.ID] = session
	active := len(s.sessions)
	snap := session.snapshot()
	s.sessionsMu.Unlock()

	metrics.QuizSessionsStarted.Inc()
	metrics.QuizSessionsActive.Set(float64(active))

	s.logger.Info().
		Str("session_id", session.ID).
		Int("questions", len(questions)).
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Msg("quiz session started")

	return snap, nil
}

func (s *Service) GetSession(sessionID string) (*SessionSnapshot, bool) {
	s.sessionsMu.RLock()
	defer s.sessionsMu.RUnlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, false
	}
	return session.snapshot(), true
}

// SubmitAnswer records the chosen option for the session's current
// question. Questions must be answered in order.
func (s *Service) SubmitAnswer(sessionID string, questionID, optionID int) (*SessionSnapshot, error) {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}
	if session.Status == StatusComplete {
		return nil, ErrQuizComplete
	}

	question, ok := session.currentQuestion()
	if !ok {
		return nil, ErrQuizComplete
	}
	if question.ID != questionID {
		return nil, fmt.Errorf("%w: expected question %d, got %d", ErrQuestionOutOfOrder, question.ID, questionID)
	}

	option, ok := question.Option(optionID)
	if !ok {
		return nil, fmt.Errorf("%w: option %d on question %d", ErrUnknownOption, optionID, questionID)
	}

	now := s.now()
	session.Profile = quiz.UpdatePreferences(session.Profile, option)
	session.Answers = append(session.Answers, Answer{
		QuestionID: questionID,
		OptionID:   optionID,
		AnsweredAt: now,
	})
	session.UpdatedAt = now
	session.results = nil

	if len(session.Answers) == len(session.Questions) {
		session.Status = StatusComplete
		session.CompletedAt = &now
		s.logger.Info().
			Str("session_id", sessionID).
			Dur("elapsed", now.Sub(session.StartedAt)).
			Msg("quiz session complete")
	}

	metrics.QuizAnswers.WithLabelValues(string(option.PreferenceKey)).Inc()

	return session.snapshot(), nil
}

// FavorDirector folds a director pick into the session profile. It is
// accepted at any point of the quiz.
func (s *Service) FavorDirector(sessionID string, answer models.DirectorAnswer) (*SessionSnapshot, error) {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()

	session, exists := s.sessions[sessionID]
	if !exists {
		return nil, ErrSessionNotFound
	}

	session.Profile = quiz.UpdateDirectorPreferences(session.Profile, answer)
	session.UpdatedAt = s.now()
	session.results = nil

	s.logger.Debug().
		Str("session_id", sessionID).
		Int("director_id", answer.DirectorID).
		Str("era", answer.Era).
		Msg("director favored")

	return session.snapshot(), nil
}

// Recommendations ranks the catalog pool against a completed session's
// profile. Results are kept on the session until the profile changes.
func (s *Service) Recommendations(ctx context.Context, sessionID string) ([]MovieScore, error) {
	s.sessionsMu.RLock()
	session, exists := s.sessions[sessionID]
	if !exists {
		s.sessionsMu.RUnlock()
		return nil, ErrSessionNotFound
	}
	if session.Status != StatusComplete {
		s.sessionsMu.RUnlock()
		return nil, ErrQuizIncomplete
	}
	if session.results != nil {
		cached := make([]MovieScore, len(session.results))
		copy(cached, session.results)
		s.sessionsMu.RUnlock()
		return cached, nil
	}
	profile := session.Profile.Clone()
	updatedAt := session.UpdatedAt
	s.sessionsMu.RUnlock()

	results, err := s.Recommend(ctx, profile, s.cfg.RecommendationCount)
	if err != nil {
		return nil, err
	}

	s.sessionsMu.Lock()
	if current, ok := s.sessions[sessionID]; ok && current == session && session.UpdatedAt.Equal(updatedAt) {
		session.results = append([]MovieScore{}, results...)
	}
	s.sessionsMu.Unlock()

	return results, nil
}

// Recommend scores profile against the catalog pool without a session.
// An empty result is not an error.
//
//nolint:gocritic // profile is a read-only value
func (s *Service) Recommend(ctx context.Context, profile models.PreferenceProfile, count int) ([]MovieScore, error) {
	if s.catalog == nil {
		return nil, ErrNoCatalog
	}
	if count <= 0 {
		count = s.cfg.RecommendationCount
	}

	pool, err := s.catalog.GetTopRatedMovies(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching candidate pool: %w", err)
	}

	results := FindMatchingMovies(profile, pool, count)
	metrics.RecommendationResults.Observe(float64(len(results)))

	s.logger.Debug().
		Int("pool", len(pool)).
		Int("results", len(results)).
		Msg("recommendations scored")

	return results, nil
}

func (s *Service) EndSession(sessionID string) error {
	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()

	if _, exists := s.sessions[sessionID]; !exists {
		return ErrSessionNotFound
	}
	delete(s.sessions, sessionID)
	metrics.QuizSessionsActive.Set(float64(len(s.sessions)))
	return nil
}

// ExpireSessions drops sessions idle for longer than the configured TTL and
// returns how many were removed.
func (s *Service) ExpireSessions() int {
	cutoff := s.now().Add(-s.cfg.SessionTTL)

	s.sessionsMu.Lock()
	defer s.sessionsMu.Unlock()

	expired := 0
	for id, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			expired++
		}
	}
	metrics.QuizSessionsActive.Set(float64(len(s.sessions)))
	return expired
}

// RunJanitor expires idle sessions every interval until ctx is done.
func (s *Service) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := s.ExpireSessions(); n > 0 {
				s.logger.Info().Int("expired", n).Msg("expired idle quiz sessions")
			}
		}
	}
}
