package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application.
type Config struct {
	LogLevel  slog.Level
	LogFormat string

	DBPath        string
	RecordingsDir string
	APIPort       string

	LLMBaseURL          string
	LLMModelName        string
	LLMAPIKey           string
	EmbeddingBaseURL    string
	EmbeddingModelName  string
	EmbeddingVectorSize int
	EmbeddingCacheSize  int
	ClassifierCacheSize int

	QdrantURL              string
	QdrantCollectionPrefix string
	SimilarityThreshold    float64

	ScreenCaptureInterval  time.Duration
	ClipboardPollInterval  time.Duration
	MeetingExtractInterval time.Duration
	ProgressCheckCron      string

	RedisURL string

	SlackToken        string
	SlackChannels     []string
	SlackPollInterval time.Duration

	AssemblyAIAPIKey string
	UserDisplayName  string
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the ones that must parse.
// If a .env file exists in the current directory or a parent directory, it is loaded.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		LogFormat:              strings.ToLower(getEnv("LOG_FORMAT", "text")),
		DBPath:                 getEnv("DB_PATH", "./data/insig8.db"),
		APIPort:                getEnv("API_PORT", "9100"),
		LLMBaseURL:             getEnv("LLM_BASE_URL", ""),
		LLMModelName:           getEnv("LLM_MODEL", "Llama-3.1-8B-Instruct"),
		LLMAPIKey:              getEnv("LLM_API_KEY", "dummy-key"),
		EmbeddingBaseURL:       getEnv("EMBEDDING_BASE_URL", ""),
		EmbeddingModelName:     getEnv("EMBEDDING_MODEL_NAME", "granite-embedding-278m-multilingual"),
		QdrantURL:              getEnv("QDRANT_URL", ""),
		QdrantCollectionPrefix: getEnv("QDRANT_COLLECTION_PREFIX", "insig8"),
		ProgressCheckCron:      getEnv("PROGRESS_CHECK_CRON", "*/15 * * * *"),
		RedisURL:               getEnv("REDIS_URL", ""),
		SlackToken:             getEnv("SLACK_TOKEN", ""),
		SlackChannels:          splitList(getEnv("SLACK_CHANNELS", "")),
		AssemblyAIAPIKey:       getEnv("ASSEMBLYAI_API_KEY", ""),
		UserDisplayName:        getEnv("USER_DISPLAY_NAME", "You"),
	}

	level, err := parseLevel(getEnv("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json, got %q", cfg.LogFormat)
	}

	ints := []struct {
		key  string
		def  int
		dest *int
	}{
		{"EMBEDDING_VECTOR_SIZE", 768, &cfg.EmbeddingVectorSize},
		{"EMBEDDING_CACHE_SIZE", 1024, &cfg.EmbeddingCacheSize},
		{"CLASSIFIER_CACHE_SIZE", 4, &cfg.ClassifierCacheSize},
	}
	for _, v := range ints {
		n, err := getEnvInt(v.key, v.def)
		if err != nil {
			return nil, err
		}
		if n <= 0 {
			return nil, fmt.Errorf("%s must be greater than 0", v.key)
		}
		*v.dest = n
	}

	threshold, err := strconv.ParseFloat(getEnv("SIMILARITY_THRESHOLD", "0.7"), 64)
	if err != nil {
		return nil, fmt.Errorf("SIMILARITY_THRESHOLD must be a valid number: %w", err)
	}
	if threshold < 0 || threshold >= 1 {
		return nil, fmt.Errorf("SIMILARITY_THRESHOLD must be in [0, 1)")
	}
	cfg.SimilarityThreshold = threshold

	durations := []struct {
		key  string
		def  string
		dest *time.Duration
	}{
		{"SCREEN_CAPTURE_INTERVAL", "5s", &cfg.ScreenCaptureInterval},
		{"CLIPBOARD_POLL_INTERVAL", "2s", &cfg.ClipboardPollInterval},
		{"MEETING_EXTRACT_INTERVAL", "30s", &cfg.MeetingExtractInterval},
		{"SLACK_POLL_INTERVAL", "1m", &cfg.SlackPollInterval},
	}
	for _, v := range durations {
		d, err := time.ParseDuration(getEnv(v.key, v.def))
		if err != nil {
			return nil, fmt.Errorf("%s must be a valid duration: %w", v.key, err)
		}
		if d <= 0 {
			return nil, fmt.Errorf("%s must be greater than 0", v.key)
		}
		*v.dest = d
	}

	if cfg.SlackToken != "" && len(cfg.SlackChannels) == 0 {
		return nil, fmt.Errorf("SLACK_CHANNELS is required when SLACK_TOKEN is set")
	}

	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	cfg.RecordingsDir = getEnv("RECORDINGS_DIR", filepath.Join(dataDir, "recordings"))
	if err := os.MkdirAll(cfg.RecordingsDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create recordings directory: %w", err)
	}

	return cfg, nil
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) (int, error) {
	raw := getEnv(key, "")
	if raw == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return n, nil
}

func parseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error, got %q", s)
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
