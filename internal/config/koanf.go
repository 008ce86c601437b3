package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar overrides the config file location.
const ConfigPathEnvVar = "CONFIG_PATH"

var DefaultConfigPaths = []string{"config.yaml", "config.yml"}

// envMappings maps lowercased environment variable names to config paths.
// Unlisted variables are ignored.
var envMappings = map[string]string{
	"server_host":      "server.host",
	"port":             "server.port",
	"read_timeout":     "server.read_timeout",
	"write_timeout":    "server.write_timeout",
	"shutdown_timeout": "server.shutdown_timeout",
	"cors_origins":     "server.cors_origins",
	"rate_limit":       "server.rate_limit",

	"tmdb_api_key":              "tmdb.api_key",
	"tmdb_base_url":             "tmdb.base_url",
	"tmdb_image_base_url":       "tmdb.image_base_url",
	"tmdb_language":             "tmdb.language",
	"tmdb_timeout":              "tmdb.timeout",
	"tmdb_requests_per_second":  "tmdb.requests_per_second",
	"tmdb_cache_size":           "tmdb.cache_size",
	"tmdb_cache_ttl":            "tmdb.cache_ttl",
	"tmdb_breaker_max_failures": "tmdb.breaker_max_failures",
	"tmdb_breaker_timeout":      "tmdb.breaker_timeout",
	"tmdb_top_rated_pages":      "tmdb.top_rated_pages",
	"catalog_snapshot_ttl":      "tmdb.snapshot_ttl",

	"db_enabled":  "database.enabled",
	"db_type":     "database.type",
	"db_path":     "database.path",
	"db_host":     "database.host",
	"db_port":     "database.port",
	"db_user":     "database.user",
	"db_password": "database.password",
	"db_name":     "database.name",
	"db_ssl_mode": "database.ssl_mode",

	"quiz_question_count":       "quiz.question_count",
	"quiz_option_count":         "quiz.option_count",
	"quiz_recommendation_count": "quiz.recommendation_count",
	"quiz_session_ttl":          "quiz.session_ttl",
	"quiz_janitor_interval":     "quiz.janitor_interval",

	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// sliceConfigPaths are read from the environment as comma separated lists.
var sliceConfigPaths = []string{
	"server.cors_origins",
}

// Load builds the configuration from defaults, the optional config file and
// the environment, then validates it.
func Load() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return cfg, nil
}

// Validate checks struct tags. Each failing field is reported by its
// config path, e.g. "quiz.question_count failed min".
func (c *Config) Validate() error {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		return f.Tag.Get("koanf")
	})

	err := v.Struct(c)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	msgs := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		msgs = append(msgs, fmt.Sprintf("%s failed %s", configPath(fe.Namespace()), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}

// configPath turns "Config.quiz.question_count" into "quiz.question_count".
func configPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}
	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}
