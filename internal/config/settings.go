package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Defaults applied when the corresponding environment variable is unset.
const (
	DefaultAmadeusBaseURL = "https://test.api.amadeus.com"
	DefaultGroqBaseURL    = "https://api.groq.com/openai/v1"
	DefaultHost           = "0.0.0.0"
	DefaultPort           = 8000
	DefaultAPITimeout     = 30 * time.Second
)

// Settings holds every runtime configuration value for the service.
type Settings struct {
	// Amadeus self-service API credentials. Both are required.
	AmadeusAPIKey    string
	AmadeusAPISecret string
	AmadeusBaseURL   string

	// Groq API key. Optional: when empty, every AI-powered path uses its
	// deterministic fallback instead.
	GroqAPIKey  string
	GroqBaseURL string

	Host string
	Port int

	// APITimeout bounds each outbound upstream call.
	APITimeout time.Duration

	Environment string
	LogLevel    string
	LogFormat   string
}

// Load reads settings from the process environment. When envFile is
// non-empty, it is loaded first via godotenv; a missing file is not an
// error (the .env file is an optional deployment artifact).
func Load(envFile string) (*Settings, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			if !os.IsNotExist(err) {
				return nil, fmt.Errorf("failed to load env file %s: %w", envFile, err)
			}
			slog.Debug("Env file not found, using process environment only.", "path", envFile)
		}
	}

	s := &Settings{
		AmadeusAPIKey:    os.Getenv("AMADEUS_API_KEY"),
		AmadeusAPISecret: os.Getenv("AMADEUS_API_SECRET"),
		AmadeusBaseURL:   getEnv("AMADEUS_BASE_URL", DefaultAmadeusBaseURL),
		GroqAPIKey:       os.Getenv("GROQ_API_KEY"),
		GroqBaseURL:      getEnv("GROQ_BASE_URL", DefaultGroqBaseURL),
		Host:             getEnv("HOST", DefaultHost),
		Environment:      getEnv("ENVIRONMENT", "development"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		LogFormat:        getEnv("LOG_FORMAT", "text"),
	}

	port, err := getEnvInt("PORT", DefaultPort)
	if err != nil {
		return nil, err
	}
	s.Port = port

	timeoutSecs, err := getEnvInt("API_TIMEOUT", int(DefaultAPITimeout/time.Second))
	if err != nil {
		return nil, err
	}
	s.APITimeout = time.Duration(timeoutSecs) * time.Second

	if err := s.Validate(); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks the invariants that must hold for the service to start.
func (s *Settings) Validate() error {
	if s.AmadeusAPIKey == "" {
		return errors.New("AMADEUS_API_KEY is required")
	}
	if s.AmadeusAPISecret == "" {
		return errors.New("AMADEUS_API_SECRET is required")
	}
	if s.Port <= 0 || s.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535, got %d", s.Port)
	}
	if s.APITimeout <= 0 {
		return errors.New("API_TIMEOUT must be positive")
	}
	return nil
}

// AIEnabled reports whether the Groq-backed paths can be used at all.
func (s *Settings) AIEnabled() bool {
	return s.GroqAPIKey != ""
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q: %w", key, v, err)
	}
	return n, nil
}
