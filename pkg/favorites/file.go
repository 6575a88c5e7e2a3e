package favorites

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// FileStore keeps favorites as a JSON array in a file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultPath returns the absolute path to ~/.tfnsw-assistant-favorites.json
func DefaultPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not find user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".tfnsw-assistant-favorites.json"), nil
}

// Load reads the favorites from disk.
// Returns an empty list if the file does not exist.
func (f *FileStore) Load(ctx context.Context) ([]FavoriteRoute, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read favorites file: %w", err)
	}

	var routes []FavoriteRoute
	if err := json.Unmarshal(data, &routes); err != nil {
		return nil, fmt.Errorf("failed to parse favorites JSON: %w", err)
	}
	return routes, nil
}

// Save writes the favorites back to disk.
func (f *FileStore) Save(ctx context.Context, routes []FavoriteRoute) error {
	if routes == nil {
		routes = []FavoriteRoute{}
	}

	data, err := json.MarshalIndent(routes, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize favorites: %w", err)
	}

	if err := os.WriteFile(f.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write favorites file: %w", err)
	}
	return nil
}
