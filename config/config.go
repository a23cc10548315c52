package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config application configuration
type Config struct {
	// Server
	ServerAddr   string
	CORSOrigins  []string
	RateLimitMax int

	// Gemini
	GeminiAPIKey string
	GeminiModel  string

	// Shopping search
	RapidAPIKey   string
	SearchBaseURL string
	SearchHost    string

	// Product lookup
	DBPath            string
	CacheExpiry       time.Duration
	USDToINR          float64
	OfferFetchTimeout time.Duration

	// Telegram bot, disabled when empty
	TelegramToken string

	// Logging
	LogLevel  slog.Level
	LogFormat string
}

// Load reads the configuration from the environment (and .env when present)
func Load() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	config := &Config{
		ServerAddr:    getEnv("SERVER_ADDR", ":8000"),
		CORSOrigins:   splitList(getEnv("CORS_ORIGINS", "*")),
		GeminiAPIKey:  getEnv("GOOGLE_API_KEY", os.Getenv("GEMINI_API_KEY")),
		GeminiModel:   os.Getenv("GEMINI_MODEL"),
		RapidAPIKey:   os.Getenv("RAPIDAPI_KEY"),
		SearchBaseURL: os.Getenv("SEARCH_BASE_URL"),
		SearchHost:    os.Getenv("SEARCH_HOST"),
		DBPath:        getEnv("DB_PATH", "data/product_cache.db"),
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		LogFormat:     strings.ToLower(getEnv("LOG_FORMAT", "text")),
	}

	var err error
	if config.RateLimitMax, err = strconv.Atoi(getEnv("RATE_LIMIT_MAX", "100")); err != nil || config.RateLimitMax <= 0 {
		return nil, fmt.Errorf("RATE_LIMIT_MAX must be a positive integer: %q", os.Getenv("RATE_LIMIT_MAX"))
	}

	seconds, err := strconv.ParseInt(getEnv("CACHE_EXPIRY_SECONDS", "86400"), 10, 64)
	if err != nil || seconds <= 0 {
		return nil, fmt.Errorf("CACHE_EXPIRY_SECONDS must be a positive integer: %q", os.Getenv("CACHE_EXPIRY_SECONDS"))
	}
	config.CacheExpiry = time.Duration(seconds) * time.Second

	if config.USDToINR, err = strconv.ParseFloat(getEnv("USD_TO_INR", "86"), 64); err != nil || config.USDToINR <= 0 {
		return nil, fmt.Errorf("USD_TO_INR must be a positive number: %q", os.Getenv("USD_TO_INR"))
	}

	if config.OfferFetchTimeout, err = time.ParseDuration(getEnv("OFFER_FETCH_TIMEOUT", "5s")); err != nil || config.OfferFetchTimeout <= 0 {
		return nil, fmt.Errorf("OFFER_FETCH_TIMEOUT must be a positive duration: %q", os.Getenv("OFFER_FETCH_TIMEOUT"))
	}

	if err := config.LogLevel.UnmarshalText([]byte(getEnv("LOG_LEVEL", "info"))); err != nil {
		return nil, fmt.Errorf("LOG_LEVEL is invalid: %w", err)
	}
	if config.LogFormat != "text" && config.LogFormat != "json" {
		return nil, fmt.Errorf("LOG_FORMAT must be text or json: %q", config.LogFormat)
	}

	// Validation
	if config.GeminiAPIKey == "" {
		return nil, fmt.Errorf("GOOGLE_API_KEY environment variable is empty")
	}
	if config.RapidAPIKey == "" {
		return nil, fmt.Errorf("RAPIDAPI_KEY environment variable is empty")
	}

	return config, nil
}

// NewLogger slog logger for the configured level and format
func (c *Config) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.LogLevel}
	if c.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
