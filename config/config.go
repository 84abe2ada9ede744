package config

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

// Config holds everything the server reads from the environment.
type Config struct {
	Port          string
	PlaidClientID string
	PlaidSecret   string
	PlaidEnv      string // sandbox | development | production
	OpenAIAPIKey  string
	RedisAddr     string // optional; empty means in-memory sessions
}

// Load reads a .env file when present, then the environment.
func Load() Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn("could not load .env file", "error", err)
	}

	return Config{
		Port:          getenv("PORT", "10000"),
		PlaidClientID: os.Getenv("PLAID_CLIENT_ID"),
		PlaidSecret:   os.Getenv("PLAID_SECRET"),
		PlaidEnv:      getenv("PLAID_ENV", "sandbox"),
		OpenAIAPIKey:  os.Getenv("OPENAI_API_KEY"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
	}
}

// PlaidEnabled reports whether Plaid credentials are configured.
func (c Config) PlaidEnabled() bool {
	return c.PlaidClientID != "" && c.PlaidSecret != ""
}

// AIEnabled reports whether the OpenAI integration is configured.
func (c Config) AIEnabled() bool {
	return c.OpenAIAPIKey != ""
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
