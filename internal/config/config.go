// Package config loads auteur's settings.
//
// Values are layered, each overriding the one before:
//  1. defaults from defaultConfig
//  2. an optional YAML file (CONFIG_PATH, or config.yaml / config.yml in the
//     working directory)
//  3. environment variables listed in envMappings
package config

import (
	"net"
	"strconv"
	"time"

	"github.com/kdimtricp/auteur/internal/database"
	"github.com/kdimtricp/auteur/internal/logging"
	"github.com/kdimtricp/auteur/internal/quiz"
	"github.com/kdimtricp/auteur/internal/recommendation"
	"github.com/kdimtricp/auteur/internal/tmdb"
)

type Config struct {
	Server   ServerConfig   `koanf:"server"`
	TMDb     TMDbConfig     `koanf:"tmdb"`
	Database DatabaseConfig `koanf:"database"`
	Quiz     QuizConfig     `koanf:"quiz"`
	Logging  LoggingConfig  `koanf:"logging"`
}

type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	CORSOrigins     []string      `koanf:"cors_origins"`
	// RateLimit is requests per minute per client IP; 0 disables limiting.
	RateLimit int `koanf:"rate_limit" validate:"min=0"`
}

type TMDbConfig struct {
	APIKey             string        `koanf:"api_key"`
	BaseURL            string        `koanf:"base_url" validate:"required,url"`
	ImageBaseURL       string        `koanf:"image_base_url" validate:"required,url"`
	Language           string        `koanf:"language" validate:"required"`
	Timeout            time.Duration `koanf:"timeout" validate:"gt=0"`
	RequestsPerSecond  float64       `koanf:"requests_per_second" validate:"gt=0"`
	CacheSize          int           `koanf:"cache_size" validate:"min=1"`
	CacheTTL           time.Duration `koanf:"cache_ttl" validate:"gt=0"`
	BreakerMaxFailures uint32        `koanf:"breaker_max_failures" validate:"min=1"`
	BreakerTimeout     time.Duration `koanf:"breaker_timeout" validate:"gt=0"`
	TopRatedPages      int           `koanf:"top_rated_pages" validate:"min=1,max=50"`
	SnapshotTTL        time.Duration `koanf:"snapshot_ttl" validate:"gt=0"`
}

type DatabaseConfig struct {
	// Enabled turns on the catalog snapshot store.
	Enabled  bool   `koanf:"enabled"`
	Type     string `koanf:"type" validate:"oneof=sqlite postgres"`
	Path     string `koanf:"path" validate:"required_if=Type sqlite"`
	Host     string `koanf:"host" validate:"required_if=Type postgres"`
	Port     int    `koanf:"port" validate:"min=0,max=65535"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Name     string `koanf:"name" validate:"required_if=Type postgres"`
	SSLMode  string `koanf:"ssl_mode"`
}

type QuizConfig struct {
	QuestionCount       int           `koanf:"question_count" validate:"min=1,max=50"`
	OptionCount         int           `koanf:"option_count" validate:"min=1,max=10"`
	RecommendationCount int           `koanf:"recommendation_count" validate:"min=1,max=100"`
	SessionTTL          time.Duration `koanf:"session_ttl" validate:"gt=0"`
	JanitorInterval     time.Duration `koanf:"janitor_interval" validate:"gt=0"`
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled off"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8080,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
			RateLimit:       120,
		},
		TMDb: TMDbConfig{
			BaseURL:            tmdb.DefaultBaseURL,
			ImageBaseURL:       tmdb.DefaultImageBaseURL,
			Language:           tmdb.DefaultLanguage,
			Timeout:            30 * time.Second,
			RequestsPerSecond:  20,
			CacheSize:          512,
			CacheTTL:           30 * time.Minute,
			BreakerMaxFailures: 5,
			BreakerTimeout:     30 * time.Second,
			TopRatedPages:      tmdb.DefaultTopRatedPages,
			SnapshotTTL:        tmdb.DefaultSnapshotTTL,
		},
		Database: DatabaseConfig{
			Enabled: true,
			Type:    database.TypeSQLite,
			Path:    "auteur.db",
			Port:    5432,
			User:    "auteur",
			Name:    "auteur",
			SSLMode: "disable",
		},
		Quiz: QuizConfig{
			QuestionCount:       quiz.DefaultQuestionCount,
			OptionCount:         quiz.DefaultOptionCount,
			RecommendationCount: recommendation.DefaultRecommendationCount,
			SessionTTL:          recommendation.DefaultSessionTTL,
			JanitorInterval:     5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Addr is the listen address for the HTTP server.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c TMDbConfig) ClientConfig() tmdb.Config {
	return tmdb.Config{
		APIKey:             c.APIKey,
		BaseURL:            c.BaseURL,
		ImageBaseURL:       c.ImageBaseURL,
		Language:           c.Language,
		Timeout:            c.Timeout,
		RequestsPerSecond:  c.RequestsPerSecond,
		CacheSize:          c.CacheSize,
		CacheTTL:           c.CacheTTL,
		BreakerMaxFailures: c.BreakerMaxFailures,
		BreakerTimeout:     c.BreakerTimeout,
	}
}

func (c TMDbConfig) CatalogConfig() tmdb.CatalogConfig {
	return tmdb.CatalogConfig{
		TopRatedPages: c.TopRatedPages,
		SnapshotTTL:   c.SnapshotTTL,
	}
}

func (c DatabaseConfig) DBConfig() database.Config {
	return database.Config{
		Type:       c.Type,
		Host:       c.Host,
		Port:       c.Port,
		User:       c.User,
		Password:   c.Password,
		Name:       c.Name,
		SSLMode:    c.SSLMode,
		SQLitePath: c.Path,
	}
}

func (c QuizConfig) ServiceConfig() recommendation.Config {
	return recommendation.Config{
		QuestionCount:       c.QuestionCount,
		OptionCount:         c.OptionCount,
		RecommendationCount: c.RecommendationCount,
		SessionTTL:          c.SessionTTL,
	}
}

func (c LoggingConfig) LoggerConfig() logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = c.Level
	cfg.Format = c.Format
	cfg.Caller = c.Caller
	return cfg
}
