package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"

	"github.com/kdimtricp/auteur/internal/directors"
	"github.com/kdimtricp/auteur/internal/logging"
	"github.com/kdimtricp/auteur/internal/recommendation"
	"github.com/kdimtricp/auteur/internal/tmdb"
)

const maxBodyBytes = 1 << 20

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

func getValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			return name
		})
	})
	return validate
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		logging.Error().Err(err).Msg("failed to encode JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeServiceError maps service and provider errors to HTTP statuses.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	var statusErr *tmdb.StatusError

	switch {
	case errors.Is(err, recommendation.ErrSessionNotFound),
		errors.Is(err, tmdb.ErrNotFound),
		errors.Is(err, directors.ErrNoDirectedFilms):
		status = http.StatusNotFound
	case errors.Is(err, recommendation.ErrQuizComplete),
		errors.Is(err, recommendation.ErrQuizIncomplete),
		errors.Is(err, recommendation.ErrQuestionOutOfOrder):
		status = http.StatusConflict
	case errors.Is(err, recommendation.ErrUnknownOption),
		errors.Is(err, directors.ErrSameDirector):
		status = http.StatusBadRequest
	case errors.Is(err, recommendation.ErrNoQuestions),
		errors.Is(err, recommendation.ErrNoCatalog),
		errors.Is(err, tmdb.ErrMissingAPIKey),
		errors.Is(err, tmdb.ErrUnavailable):
		status = http.StatusServiceUnavailable
	case errors.Is(err, tmdb.ErrUnauthorized), errors.As(err, &statusErr):
		status = http.StatusBadGateway
	}

	event := logging.Ctx(r.Context()).Warn()
	if status >= http.StatusInternalServerError {
		event = logging.Ctx(r.Context()).Error()
	}
	event.Err(err).Int("status", status).Str("path", r.URL.Path).Msg("request failed")

	writeError(w, status, err.Error())
}

// decodeJSON reads a JSON body into dst and validates it. It writes the 400
// response itself and reports whether the handler should continue.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "request body too large")
		return false
	}
	if err := json.Unmarshal(body, dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	if err := getValidator().Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, validationMessage(err))
		return false
	}
	return true
}

func validationMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			msgs = append(msgs, fmt.Sprintf("%s must satisfy %s=%s", fe.Field(), fe.Tag(), fe.Param()))
			continue
		}
		msgs = append(msgs, fmt.Sprintf("%s is %s", fe.Field(), fe.Tag()))
	}
	return strings.Join(msgs, "; ")
}
