package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/kdimtricp/auteur/internal/directors"
	"github.com/kdimtricp/auteur/internal/logging"
	"github.com/kdimtricp/auteur/internal/models"
	"github.com/kdimtricp/auteur/internal/recommendation"
	"github.com/kdimtricp/auteur/internal/tmdb"
)

type answerRequest struct {
	QuestionID int `json:"question_id" validate:"required,min=1"`
	OptionID   int `json:"option_id" validate:"required,min=1"`
}

type favorDirectorRequest struct {
	DirectorID    int                  `json:"director_id" validate:"required,min=1"`
	PreferenceKey models.PreferenceKey `json:"preference_key" validate:"omitempty,oneof=visualStyles narrativeStyles themes"`
	StyleKeywords []string             `json:"style_keywords" validate:"max=20,dive,max=64"`
}

type recommendRequest struct {
	Profile models.PreferenceProfile `json:"profile"`
	Count   int                      `json:"count" validate:"min=0,max=100"`
}

type recommendationsResponse struct {
	SessionID       string                      `json:"session_id,omitempty"`
	Recommendations []recommendation.MovieScore `json:"recommendations"`
}

// GenerateQuestions returns a fresh question set without starting a session.
func (h *Handlers) GenerateQuestions(w http.ResponseWriter, r *http.Request) {
	count, ok := queryInt(w, r, "count", "min=0,max=50")
	if !ok {
		return
	}
	options, ok := queryInt(w, r, "options", "min=0,max=10")
	if !ok {
		return
	}

	questions, err := h.quiz.GenerateQuestions(count, options)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"questions": questions})
}

func (h *Handlers) StartSession(w http.ResponseWriter, r *http.Request) {
	snap, err := h.quiz.StartSession(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, snap)
}

func (h *Handlers) GetSession(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.quiz.GetSession(chi.URLParam(r, "sessionID"))
	if !ok {
		writeServiceError(w, r, recommendation.ErrSessionNotFound)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (h *Handlers) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	snap, err := h.quiz.SubmitAnswer(chi.URLParam(r, "sessionID"), req.QuestionID, req.OptionID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// FavorDirector adds a director to the session profile. The director's most
// active decade is looked up so it can feed the eras bucket; if TMDb cannot
// be reached the pick is still recorded, just without an era.
func (h *Handlers) FavorDirector(w http.ResponseWriter, r *http.Request) {
	var req favorDirectorRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	sessionID := chi.URLParam(r, "sessionID")
	if _, ok := h.quiz.GetSession(sessionID); !ok {
		writeServiceError(w, r, recommendation.ErrSessionNotFound)
		return
	}

	answer := models.DirectorAnswer{
		DirectorID:    req.DirectorID,
		PreferenceKey: req.PreferenceKey,
		StyleKeywords: req.StyleKeywords,
	}

	profile, err := h.directors.Profile(r.Context(), req.DirectorID)
	switch {
	case err == nil:
		answer.Era = directors.EraOf(profile.Stats)
	case errors.Is(err, tmdb.ErrNotFound), errors.Is(err, directors.ErrNoDirectedFilms):
		writeServiceError(w, r, err)
		return
	default:
		logging.Ctx(r.Context()).Warn().Err(err).Int("director_id", req.DirectorID).
			Msg("director lookup failed, recording pick without era")
	}

	snap, err := h.quiz.FavorDirector(sessionID, answer)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// SessionRecommendations ranks the catalog for a completed session. An
// empty list is a valid answer.
func (h *Handlers) SessionRecommendations(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	results, err := h.quiz.Recommendations(r.Context(), sessionID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if results == nil {
		results = []recommendation.MovieScore{}
	}
	writeJSON(w, http.StatusOK, recommendationsResponse{SessionID: sessionID, Recommendations: results})
}

func (h *Handlers) EndSession(w http.ResponseWriter, r *http.Request) {
	if err := h.quiz.EndSession(chi.URLParam(r, "sessionID")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Recommend scores a caller-supplied profile without a session.
func (h *Handlers) Recommend(w http.ResponseWriter, r *http.Request) {
	var req recommendRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	results, err := h.quiz.Recommend(r.Context(), req.Profile, req.Count)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	if results == nil {
		results = []recommendation.MovieScore{}
	}
	writeJSON(w, http.StatusOK, recommendationsResponse{Recommendations: results})
}

// queryInt reads an optional integer query parameter and checks it against
// a validator rule. Missing parameters read as 0.
func queryInt(w http.ResponseWriter, r *http.Request, name, rule string) (int, bool) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err == nil {
		err = getValidator().Var(n, rule)
	}
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return n, true
}
