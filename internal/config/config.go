// Package config loads runtime settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

type Config struct {
	App AppConfig
	AI  AIConfig
}

type AppConfig struct {
	LogFilePath  string `validate:"required"`
	Debug        bool
	WordsPerPage int `validate:"min=50,max=5000"`
	LibraryDir   string
	ViewMode     string `validate:"omitempty,oneof=reading analysis focus presentation mobile"`
}

type AIConfig struct {
	Provider      string        `validate:"oneof=offline ollama"`
	OllamaBaseURL string        `validate:"omitempty,url"`
	Models        []string      `validate:"min=1,dive,required"`
	Language      string        `validate:"required"`
	SummaryLength string        `validate:"oneof=brief medium detailed"`
	Timeout       time.Duration `validate:"gt=0"`
	CannedDelay   time.Duration `validate:"gte=0"`
	CacheTTL      time.Duration `validate:"gte=0"`
	Temperature   float64       `validate:"gte=0,lte=2"`
}

// Load reads .env (if present) and PRR_* variables, then validates the
// result.
func Load() (*Config, error) {
	// A missing .env is normal; the environment alone is enough.
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			LogFilePath:  getEnv("PRR_LOG_FILE", filepath.Join(StateDir(), "prr.log")),
			Debug:        getEnvAsBool("PRR_DEBUG", false),
			WordsPerPage: getEnvAsInt("PRR_WORDS_PER_PAGE", 250),
			LibraryDir:   getEnv("PRR_LIBRARY", ""),
			ViewMode:     getEnv("PRR_VIEW_MODE", ""),
		},
		AI: AIConfig{
			Provider:      getEnv("PRR_AI_PROVIDER", "offline"),
			OllamaBaseURL: getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			Models:        getEnvAsList("PRR_AI_MODELS", []string{"llama3", "qwen2.5", "mistral"}),
			Language:      getEnv("PRR_LANGUAGE", "english"),
			SummaryLength: getEnv("PRR_SUMMARY_LENGTH", "medium"),
			Timeout:       getEnvAsDuration("PRR_AI_TIMEOUT", 120*time.Second),
			CannedDelay:   getEnvAsDuration("PRR_AI_CANNED_DELAY", 1500*time.Millisecond),
			CacheTTL:      getEnvAsDuration("PRR_AI_CACHE_TTL", time.Hour),
			Temperature:   getEnvAsFloat("PRR_AI_TEMPERATURE", 0.7),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// StateDir returns XDG_STATE_HOME/prr or ~/.local/state/prr
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, "prr")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "state", "prr")
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	strValue := getEnv(key, "")
	if value, err := time.ParseDuration(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}

func getEnvAsList(key string, fallback []string) []string {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(strValue, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
