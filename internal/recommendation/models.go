package recommendation

import (
	"time"

	"github.com/kdimtricp/auteur/internal/models"
)

type Status string

const (
	StatusInProgress Status = "in_progress"
	StatusComplete   Status = "complete"
)

type Answer struct {
	QuestionID int       `json:"question_id"`
	OptionID   int       `json:"option_id"`
	AnsweredAt time.Time `json:"answered_at"`
}

// Session is one quiz run. It is owned by the Service and only touched
// under the service lock.
type Session struct {
	ID          string
	Questions   []models.QuizQuestion
	Answers     []Answer
	Profile     models.PreferenceProfile
	Status      Status
	StartedAt   time.Time
	UpdatedAt   time.Time
	CompletedAt *time.Time

	results []MovieScore
}

func (s *Session) currentQuestion() (models.QuizQuestion, bool) {
	if len(s.Answers) >= len(s.Questions) {
		return models.QuizQuestion{}, false
	}
	return s.Questions[len(s.Answers)], true
}

// SessionSnapshot is a copy of a session that callers may hold and read
// without synchronization.
type SessionSnapshot struct {
	ID              string                   `json:"session_id"`
	Status          Status                   `json:"status"`
	Questions       []models.QuizQuestion    `json:"questions"`
	CurrentQuestion *models.QuizQuestion     `json:"current_question,omitempty"`
	Answered        int                      `json:"answered"`
	Total           int                      `json:"total"`
	Answers         []Answer                 `json:"answers"`
	Profile         models.PreferenceProfile `json:"profile"`
	StartedAt       time.Time                `json:"started_at"`
	CompletedAt     *time.Time               `json:"completed_at,omitempty"`
}

func (s *Session) snapshot() *SessionSnapshot {
	snap := &SessionSnapshot{
		ID:        s.ID,
		Status:    s.Status,
		Questions: append([]models.QuizQuestion(nil), s.Questions...),
		Answered:  len(s.Answers),
		Total:     len(s.Questions),
		Answers:   append([]Answer{}, s.Answers...),
		Profile:   s.Profile.Clone(),
		StartedAt: s.StartedAt,
	}
	if q, ok := s.currentQuestion(); ok {
		snap.CurrentQuestion = &q
	}
	if s.CompletedAt != nil {
		completed := *s.CompletedAt
		snap.CompletedAt = &completed
	}
	return snap
}
