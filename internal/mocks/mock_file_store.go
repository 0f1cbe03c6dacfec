package mocks

import "github.com/deadloked8999/e-bar/domain"

// MockFileStore implements domain.FileStore for testing
type MockFileStore struct {
	SaveFunc   func(filename string, data []byte) (string, error)
	RemoveFunc func(path string) error

	// Removed records removed paths when no RemoveFunc is set
	Removed []string
}

// NewMockFileStore creates a new MockFileStore with default behaviors
func NewMockFileStore() *MockFileStore {
	return &MockFileStore{}
}

// Save stores a file and returns its path
func (m *MockFileStore) Save(filename string, data []byte) (string, error) {
	if m.SaveFunc != nil {
		return m.SaveFunc(filename, data)
	}
	// Default behavior: fake path
	return "/tmp/uploads/" + filename, nil
}

// Remove deletes a stored file
func (m *MockFileStore) Remove(path string) error {
	if m.RemoveFunc != nil {
		return m.RemoveFunc(path)
	}
	// Default behavior: record and succeed
	m.Removed = append(m.Removed, path)
	return nil
}

// Compile-time interface compliance verification
var _ domain.FileStore = (*MockFileStore)(nil)
