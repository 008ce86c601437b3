package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type RouterConfig struct {
	CORSOrigins []string
	// RateLimit is requests per minute per client IP on /api; 0 disables it.
	RateLimit int
}

func NewRouter(h *Handlers, cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestContext)
	r.Use(instrument)
	r.Use(middleware.Recoverer)

	r.Get("/ping", PingHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Use(corsMiddleware(cfg.CORSOrigins))
		r.Use(rateLimit(cfg.RateLimit))

		r.Get("/movies/{movieID}", h.GetMovie)
		r.Get("/search", h.Search)

		r.Get("/directors/compare", h.CompareDirectors)
		r.Get("/directors/{directorID}", h.GetDirector)

		r.Route("/quiz", func(r chi.Router) {
			r.Get("/questions", h.GenerateQuestions)
			r.Post("/sessions", h.StartSession)

			r.Route("/sessions/{sessionID}", func(r chi.Router) {
				r.Use(sessionContext)
				r.Get("/", h.GetSession)
				r.Delete("/", h.EndSession)
				r.Post("/answers", h.SubmitAnswer)
				r.Post("/directors", h.FavorDirector)
				r.Get("/recommendations", h.SessionRecommendations)
			})
		})

		r.Post("/recommendations", h.Recommend)
	})

	return r
}
