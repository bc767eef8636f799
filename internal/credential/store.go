package credential

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// FileName is the name of the credential file inside the config directory
const FileName = "credentials.json"

type fileFormat struct {
	APIKey string `json:"api_key"`
}

// Store reads and writes the API key file
type Store struct {
	path   string
	logger *slog.Logger
}

// DefaultPath returns $XDG_CONFIG_HOME/dolmetscher/credentials.json or the
// platform equivalent
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		home, _ := os.UserHomeDir()
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "dolmetscher", FileName)
}

// NewStore creates a store backed by path; an empty path selects DefaultPath
func NewStore(path string) *Store {
	if path == "" {
		path = DefaultPath()
	}
	return &Store{path: path, logger: slog.Default()}
}

// Path returns the file the store reads and writes
func (s *Store) Path() string {
	return s.path
}

// Load returns the stored API key. A missing file, a file that is not a
// JSON object, or a non-string api_key all yield "".
func (s *Store) Load() string {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Debug("credential file unreadable", "path", s.path, "error", err)
		}
		return ""
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		s.logger.Debug("credential file malformed", "path", s.path, "error", err)
		return ""
	}
	return f.APIKey
}

// Save replaces the file content with apiKey. The write is not atomic.
func (s *Store) Save(apiKey string) error {
	data, err := json.Marshal(fileFormat{APIKey: apiKey})
	if err != nil {
		return fmt.Errorf("failed to encode credential file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create credential directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credential file: %w", err)
	}

	return nil
}
