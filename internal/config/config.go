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

	"instructchat/internal/model"
)

// Config holds all configuration for the application.
type Config struct {
	LLMBaseURL       string
	LLMModelName     string
	LLMAPIKey        string
	LLMTimeout       time.Duration
	ModelLoadTimeout time.Duration

	// Device is one of "auto", "gpu" or "cpu".
	Device    string
	GPULayers int

	// HistoryDBPath selects the SQLite history store. Empty keeps history in memory.
	HistoryDBPath string

	APIPort   string
	LogLevel  slog.Level
	LogFormat string

	AppTitle            string
	AppFooter           string
	DefaultMaxNewTokens int

	RateLimitRPS   float64
	RateLimitBurst int
}

// Load reads configuration from environment variables and returns a Config struct.
// It applies defaults for optional fields and validates the rest.
// If a .env file exists in the current directory or a parent directory, it is loaded first.
// Environment variables already set take precedence over .env file values.
func Load() (*Config, error) {
	_ = godotenv.Load()

	wd, err := os.Getwd()
	if err == nil {
		dir := wd
		for i := 0; i < 5; i++ { // Limit search depth
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
		LLMBaseURL:    getEnv("LLM_BASE_URL", "http://localhost:8080"),
		LLMModelName:  getEnv("LLM_MODEL", "microsoft/phi-1_5"),
		LLMAPIKey:     getEnv("LLM_API_KEY", "dummy-key"),
		Device:        strings.ToLower(getEnv("DEVICE", "auto")),
		HistoryDBPath: getEnv("HISTORY_DB_PATH", ""),
		APIPort:       getEnv("API_PORT", "9000"),
		LogFormat:     strings.ToLower(getEnv("LOG_FORMAT", "text")),
		AppTitle:      getEnv("APP_TITLE", "Phi-1.5 Assistant"),
		AppFooter:     getEnv("APP_FOOTER", "Made with ♥ by Pouryare"),
	}

	switch cfg.Device {
	case "auto", "gpu", "cpu":
	default:
		return nil, fmt.Errorf("DEVICE must be one of auto, gpu, cpu: got %q", cfg.Device)
	}

	switch cfg.LogFormat {
	case "text", "json":
	default:
		return nil, fmt.Errorf("LOG_FORMAT must be text or json: got %q", cfg.LogFormat)
	}

	if cfg.LogLevel, err = parseLevel(getEnv("LOG_LEVEL", "info")); err != nil {
		return nil, err
	}

	if cfg.LLMTimeout, err = getDuration("LLM_TIMEOUT", "0s"); err != nil {
		return nil, err
	}
	if cfg.ModelLoadTimeout, err = getDuration("MODEL_LOAD_TIMEOUT", "30s"); err != nil {
		return nil, err
	}
	if cfg.ModelLoadTimeout <= 0 {
		return nil, fmt.Errorf("MODEL_LOAD_TIMEOUT must be greater than 0")
	}

	// 999 offloads every layer for any model llama.cpp can load.
	if cfg.GPULayers, err = getInt("GPU_LAYERS", "999"); err != nil {
		return nil, err
	}
	if cfg.GPULayers < 0 {
		return nil, fmt.Errorf("GPU_LAYERS must not be negative")
	}

	if cfg.DefaultMaxNewTokens, err = getInt("DEFAULT_MAX_NEW_TOKENS", strconv.Itoa(model.DefaultNewTokens)); err != nil {
		return nil, err
	}
	if cfg.DefaultMaxNewTokens < model.MinNewTokens || cfg.DefaultMaxNewTokens > model.MaxNewTokens {
		return nil, fmt.Errorf("DEFAULT_MAX_NEW_TOKENS must be between %d and %d", model.MinNewTokens, model.MaxNewTokens)
	}

	rps, err := strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "2"), 64)
	if err != nil {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must be a valid number: %w", err)
	}
	if rps < 0 {
		return nil, fmt.Errorf("RATE_LIMIT_RPS must be 0 (disabled) or greater")
	}
	cfg.RateLimitRPS = rps

	if cfg.RateLimitBurst, err = getInt("RATE_LIMIT_BURST", "5"); err != nil {
		return nil, err
	}
	if cfg.RateLimitBurst <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_BURST must be greater than 0")
	}

	if cfg.HistoryDBPath != "" && !strings.HasPrefix(cfg.HistoryDBPath, "file:") {
		dataDir := filepath.Dir(cfg.HistoryDBPath)
		if err := os.MkdirAll(dataDir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	return cfg, nil
}

// ClampMaxNewTokens bounds n to [model.MinNewTokens, model.MaxNewTokens].
func ClampMaxNewTokens(n int) int {
	if n < model.MinNewTokens {
		return model.MinNewTokens
	}
	if n > model.MaxNewTokens {
		return model.MaxNewTokens
	}
	return n
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key, defaultValue string) (int, error) {
	v, err := strconv.Atoi(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid integer: %w", key, err)
	}
	return v, nil
}

func getDuration(key, defaultValue string) (time.Duration, error) {
	d, err := time.ParseDuration(getEnv(key, defaultValue))
	if err != nil {
		return 0, fmt.Errorf("%s must be a valid duration: %w", key, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", key)
	}
	return d, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error: %w", err)
	}
	return level, nil
}
