package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP API
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auteur_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auteur_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		},
		[]string{"method", "route"},
	)

	// TMDb client
	TMDbRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "auteur_tmdb_request_duration_seconds",
			Help:    "Duration of TMDb API calls in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint", "outcome"},
	)

	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auteur_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache"}, // "tmdb", "catalog_snapshot"
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auteur_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache"},
	)

	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "auteur_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auteur_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	// Quiz
	QuizSessionsStarted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auteur_quiz_sessions_started_total",
			Help: "Total number of quiz sessions started",
		},
	)

	QuizSessionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "auteur_quiz_sessions_active",
			Help: "Current number of in-memory quiz sessions",
		},
	)

	QuizAnswers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "auteur_quiz_answers_total",
			Help: "Total number of quiz answers by preference bucket",
		},
		[]string{"bucket"},
	)

	QuizGenerationFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "auteur_quiz_generation_failures_total",
			Help: "Total number of question generations that produced no questions",
		},
	)

	RecommendationResults = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "auteur_recommendation_results",
			Help:    "Number of movies returned per recommendation pass",
			Buckets: []float64{0, 1, 2, 4, 8, 16, 32},
		},
	)
)

// RecordAPIRequest records one served HTTP request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func RecordTMDbRequest(endpoint string, duration time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	TMDbRequestDuration.WithLabelValues(endpoint, outcome).Observe(duration.Seconds())
}

func RecordCacheLookup(cache string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cache).Inc()
		return
	}
	CacheMisses.WithLabelValues(cache).Inc()
}
