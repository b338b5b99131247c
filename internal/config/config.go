package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration for the echoquiz server.
type Config struct {
	Server   ServerConfig
	Quiz     QuizConfig
	Model    ModelConfig
	Results  ResultsConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Admin    AdminConfig
}

type ServerConfig struct {
	Port        int
	Env         string
	CORSOrigins []string
}

type QuizConfig struct {
	DatasetPath           string
	FallbackQuestionsPath string
	VideoDirs             []string
	VideoBaseURL          string
}

type ModelConfig struct {
	ModelPath   string
	EncoderPath string
}

type ResultsConfig struct {
	Backend string
	Path    string
}

type DatabaseConfig struct {
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	URL               string
	RequestsPerMinute int
}

type AdminConfig struct {
	TokenHash string
}

const (
	BackendCSV      = "csv"
	BackendPostgres = "postgres"
)

var validBackends = map[string]bool{
	BackendCSV:      true,
	BackendPostgres: true,
}

// Load reads configuration from environment variables and returns a validated Config.
// Returns an error with a descriptive message if any required value is missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Port:        envInt("ECHOQUIZ_PORT", 5000),
			Env:         envString("ECHOQUIZ_ENV", "development"),
			CORSOrigins: envList("ECHOQUIZ_CORS_ORIGINS", []string{"*"}),
		},
		Quiz: QuizConfig{
			DatasetPath:           envString("ECHOQUIZ_DATASET_PATH", "FileList.csv"),
			FallbackQuestionsPath: envString("ECHOQUIZ_FALLBACK_QUESTIONS_PATH", "quiz_question.json"),
			VideoDirs:             envList("ECHOQUIZ_VIDEO_DIRS", []string{"../public/mp4", "mp4"}),
			VideoBaseURL:          strings.TrimSuffix(envString("ECHOQUIZ_VIDEO_BASE_URL", "http://127.0.0.1:5000/videos"), "/"),
		},
		Model: ModelConfig{
			ModelPath:   envString("ECHOQUIZ_MODEL_PATH", "lightgbm_model.json"),
			EncoderPath: envString("ECHOQUIZ_ENCODER_PATH", "label_encoder.json"),
		},
		Results: ResultsConfig{
			Backend: envString("ECHOQUIZ_RESULTS_BACKEND", BackendCSV),
			Path:    envString("ECHOQUIZ_RESULTS_PATH", "results.csv"),
		},
		Database: DatabaseConfig{
			URL:             os.Getenv("DATABASE_URL"),
			MaxOpenConns:    envInt("DATABASE_MAX_OPEN_CONNS", 10),
			MaxIdleConns:    envInt("DATABASE_MAX_IDLE_CONNS", 2),
			ConnMaxLifetime: envDuration("DATABASE_CONN_MAX_LIFETIME", 5*time.Minute),
		},
		Redis: RedisConfig{
			URL:               os.Getenv("REDIS_URL"),
			RequestsPerMinute: envInt("ECHOQUIZ_RATE_LIMIT_PER_MIN", 60),
		},
		Admin: AdminConfig{
			TokenHash: os.Getenv("ECHOQUIZ_ADMIN_TOKEN_HASH"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("ECHOQUIZ_PORT must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Quiz.DatasetPath == "" {
		return fmt.Errorf("ECHOQUIZ_DATASET_PATH is required")
	}
	if len(c.Quiz.VideoDirs) == 0 {
		return fmt.Errorf("ECHOQUIZ_VIDEO_DIRS must list at least one directory")
	}
	if !strings.HasPrefix(c.Quiz.VideoBaseURL, "http://") && !strings.HasPrefix(c.Quiz.VideoBaseURL, "https://") {
		return fmt.Errorf("ECHOQUIZ_VIDEO_BASE_URL must start with http:// or https://, got %q", c.Quiz.VideoBaseURL)
	}

	if !validBackends[c.Results.Backend] {
		return fmt.Errorf("ECHOQUIZ_RESULTS_BACKEND must be one of csv, postgres; got %q", c.Results.Backend)
	}
	if c.Results.Backend == BackendCSV && c.Results.Path == "" {
		return fmt.Errorf("ECHOQUIZ_RESULTS_PATH is required when ECHOQUIZ_RESULTS_BACKEND is csv")
	}
	if c.Results.Backend == BackendPostgres && c.Database.URL == "" {
		return fmt.Errorf("DATABASE_URL is required when ECHOQUIZ_RESULTS_BACKEND is postgres")
	}

	if c.Redis.URL != "" && !strings.HasPrefix(c.Redis.URL, "redis://") && !strings.HasPrefix(c.Redis.URL, "rediss://") {
		return fmt.Errorf("REDIS_URL must start with redis:// or rediss://, got %q", c.Redis.URL)
	}

	if c.Admin.TokenHash != "" && !strings.HasPrefix(c.Admin.TokenHash, "$2") {
		return fmt.Errorf("ECHOQUIZ_ADMIN_TOKEN_HASH must be a bcrypt hash")
	}

	return nil
}

// RateLimitEnabled reports whether a Redis backend is configured for rate limiting.
func (c *Config) RateLimitEnabled() bool {
	return c.Redis.URL != ""
}

func envString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func envInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func envDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

// envList splits a comma-separated variable, dropping empty entries.
func envList(key string, defaultVal []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
