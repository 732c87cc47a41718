// Package config provides configuration for the chat server.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the chat server configuration.
type Config struct {
	// Server settings
	HTTPPort int

	// Remote assistant service
	OpenAIAPIKey   string
	OpenAIBaseURL  string
	AssistantID    string
	RequestTimeout time.Duration

	// Run polling
	PollInterval    time.Duration
	PollMaxAttempts int

	// Document store
	DocstoreDriver   string // "sqlite" or "chroma"
	DatabaseURL      string
	ChromaURL        string
	ChromaCollection string

	// Logging
	LogLevel string
}

// Load loads configuration from environment variables.
func Load() *Config {
	cfg := &Config{
		HTTPPort:         getEnvInt("HTTP_PORT", 5000),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		AssistantID:      getEnv("ASSISTANT_ID", ""),
		RequestTimeout:   time.Duration(getEnvInt("REQUEST_TIMEOUT_MS", 30000)) * time.Millisecond,
		PollInterval:     time.Duration(getEnvInt("POLL_INTERVAL_MS", 2000)) * time.Millisecond,
		PollMaxAttempts:  getEnvInt("POLL_MAX_ATTEMPTS", 150),
		DocstoreDriver:   getEnv("DOCSTORE_DRIVER", "sqlite"),
		DatabaseURL:      getEnv("DATABASE_URL", "file:mychatapp.db?cache=shared&mode=rwc"),
		ChromaURL:        getEnv("CHROMA_URL", "http://localhost:8000"),
		ChromaCollection: getEnv("CHROMA_COLLECTION", "mychat_threads"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
	}
	return cfg
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}
