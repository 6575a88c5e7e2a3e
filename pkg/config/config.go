package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
)

// Favorites backends.
const (
	FavoritesFile  = "file"
	FavoritesRedis = "redis"
)

// AppConfig holds all user-defined persistent settings
type AppConfig struct {
	AccentColor         string       `json:"accent_color,omitempty"`
	DefaultMode         journey.Mode `json:"default_mode,omitempty"`
	FavoritesBackend    string       `json:"favorites_backend,omitempty"`
	OfflineSchedulePath string       `json:"offline_schedule_path,omitempty"`
}

// Mode returns the configured default mode, falling back to train.
func (c *AppConfig) Mode() journey.Mode {
	if c.DefaultMode.Valid() {
		return c.DefaultMode
	}
	return journey.ModeTrain
}

// Backend returns the configured favorites backend, falling back to file.
func (c *AppConfig) Backend() string {
	if c.FavoritesBackend == FavoritesRedis {
		return FavoritesRedis
	}
	return FavoritesFile
}

// getConfigPath returns the absolute path to ~/.tfnsw-assistant.json
func getConfigPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".tfnsw-assistant.json"), nil
}

// Load reads the application configuration from disk.
// Returns an empty struct if the file does not exist.
func Load() (*AppConfig, error) {
	path, err := getConfigPath()
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &AppConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg AppConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Save writes the application configuration back to disk.
func Save(cfg *AppConfig) error {
	path, err := getConfigPath()
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
