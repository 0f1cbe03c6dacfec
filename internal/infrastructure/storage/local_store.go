package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/deadloked8999/e-bar/domain"
)

// LocalStore implements domain.FileStore on the local filesystem.
// Stored names are uuid-prefixed so uploads never collide.
type LocalStore struct {
	dir string
}

// NewLocalStore creates the upload directory if needed
func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload dir: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

// Save implements domain.FileStore
func (s *LocalStore) Save(filename string, data []byte) (string, error) {
	path := filepath.Join(s.dir, uuid.NewString()+"_"+sanitize(filename))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to save file: %w", err)
	}
	return path, nil
}

// Remove implements domain.FileStore. A missing file is not an error;
// the row is the source of truth.
func (s *LocalStore) Remove(path string) error {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// sanitize strips path separators and control characters from an
// uploaded filename
func sanitize(name string) string {
	var b strings.Builder
	for _, c := range name {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
			b.WriteRune(c)
		case c == '.' || c == '_' || c == '-' || c == ' ':
			b.WriteRune(c)
		}
	}
	if b.Len() == 0 {
		return "upload"
	}
	return b.String()
}

var _ domain.FileStore = (*LocalStore)(nil)
