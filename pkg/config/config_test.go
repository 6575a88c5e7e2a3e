package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/thesumanshah/tfnsw-assistant/pkg/journey"
)

func TestConfigLoadSave(t *testing.T) {
	tempDir := t.TempDir()

	// Override the home directory environment variable for testing
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir) // For Windows compatibility in tests

	// 1. Test Load with no existing file
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error when loading missing config, got: %v", err)
	}
	if cfg == nil {
		t.Fatalf("expected empty config to be returned, got nil")
	}
	if cfg.Mode() != journey.ModeTrain || cfg.Backend() != FavoritesFile {
		t.Errorf("expected train/file defaults, got %s/%s", cfg.Mode(), cfg.Backend())
	}

	// 2. Modify and Save the config
	cfg.AccentColor = "#F5A623"
	cfg.DefaultMode = journey.ModeMetro
	cfg.FavoritesBackend = FavoritesRedis

	if err := Save(cfg); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	// Verify the file was actually created
	configPath := filepath.Join(tempDir, ".tfnsw-assistant.json")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf("expected config file to be created at %s", configPath)
	}

	// 3. Test Load with existing file
	loadedCfg, err := Load()
	if err != nil {
		t.Fatalf("failed to load existing config: %v", err)
	}

	if !reflect.DeepEqual(cfg, loadedCfg) {
		t.Errorf("loaded config does not match saved config.\nGot: %+v\nExpected: %+v", loadedCfg, cfg)
	}
	if loadedCfg.Mode() != journey.ModeMetro || loadedCfg.Backend() != FavoritesRedis {
		t.Errorf("expected metro/redis, got %s/%s", loadedCfg.Mode(), loadedCfg.Backend())
	}
}

func TestConfigParseError(t *testing.T) {
	tempDir := t.TempDir()
	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	// Write invalid JSON to the config file
	configPath := filepath.Join(tempDir, ".tfnsw-assistant.json")
	if err := os.WriteFile(configPath, []byte("invalid json { content"), 0644); err != nil {
		t.Fatalf("failed to write invalid json: %v", err)
	}

	if _, err := Load(); err == nil {
		t.Errorf("expected error when loading invalid json, got nil")
	}
}

func TestReadEnvironment(t *testing.T) {
	t.Setenv("TFNSW_API_KEY", "")
	t.Setenv("NEXT_PUBLIC_TFNSW_API_KEY", "legacy-key")
	t.Setenv("PERPLEXITY_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "openai-key")
	t.Setenv("TFNSW_REDIS_ADDRESS", "localhost:6379")
	t.Setenv("TFNSW_REDIS_DATABASE", "3")
	t.Setenv("TFNSW_DEBUG", "YES")

	env, err := ReadEnvironment()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.TfNSWAPIKey != "legacy-key" {
		t.Errorf("expected legacy API key alias, got %q", env.TfNSWAPIKey)
	}
	if env.IntentAPIKey != "openai-key" {
		t.Errorf("expected OPENAI_API_KEY alias, got %q", env.IntentAPIKey)
	}
	if !env.RedisConfigured() || env.RedisDatabase != 3 {
		t.Errorf("unexpected redis settings %+v", env)
	}
	if !env.Debug {
		t.Errorf("expected debug to be enabled")
	}

	t.Setenv("TFNSW_REDIS_DATABASE", "three")
	if _, err := ReadEnvironment(); err == nil {
		t.Errorf("expected error for non-numeric redis database")
	}
}

func TestLoadDotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	if err := os.WriteFile(path, []byte("TELEGRAM_BOT_TOKEN=from-dotenv\nTFNSW_INTENT_MODEL=sonar\n"), 0644); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}

	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	os.Unsetenv("TELEGRAM_BOT_TOKEN")
	t.Setenv("TFNSW_INTENT_MODEL", "already-set")

	if err := LoadDotEnv(path, filepath.Join(t.TempDir(), "missing.env")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	env, err := ReadEnvironment()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if env.TelegramToken != "from-dotenv" {
		t.Errorf("expected token from .env, got %q", env.TelegramToken)
	}
	if env.IntentModel != "already-set" {
		t.Errorf("expected existing variable to win, got %q", env.IntentModel)
	}
}
