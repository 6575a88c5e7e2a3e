package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Environment holds secrets and service endpoints read from the process
// environment.
type Environment struct {
	TfNSWAPIKey   string
	IntentAPIKey  string
	IntentModel   string
	TelegramToken string
	RedisAddress  string
	RedisPassword string
	RedisDatabase int
	LogFormat     string
	Debug         bool
}

// LoadDotEnv loads variables from the given .env files, or ./.env when none
// are given. Missing files are not an error; variables already set win.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// ReadEnvironment collects the TFNSW_* settings and their legacy aliases.
func ReadEnvironment() (*Environment, error) {
	env := &Environment{
		TfNSWAPIKey:   firstSet("TFNSW_API_KEY", "NEXT_PUBLIC_TFNSW_API_KEY"),
		IntentAPIKey:  firstSet("PERPLEXITY_API_KEY", "OPENAI_API_KEY"),
		IntentModel:   os.Getenv("TFNSW_INTENT_MODEL"),
		TelegramToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		RedisAddress:  os.Getenv("TFNSW_REDIS_ADDRESS"),
		RedisPassword: os.Getenv("TFNSW_REDIS_PASSWORD"),
		LogFormat:     os.Getenv("TFNSW_LOG_FORMAT"),
		Debug:         os.Getenv("TFNSW_DEBUG") == "YES",
	}

	if db := os.Getenv("TFNSW_REDIS_DATABASE"); db != "" {
		n, err := strconv.Atoi(db)
		if err != nil {
			return nil, fmt.Errorf("invalid TFNSW_REDIS_DATABASE %q: %w", db, err)
		}
		env.RedisDatabase = n
	}

	return env, nil
}

// RedisConfigured reports whether a redis address was given.
func (e *Environment) RedisConfigured() bool {
	return e.RedisAddress != ""
}

func firstSet(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}
