package mocks

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deadloked8999/e-bar/domain"
)

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	IssueFunc      func(establishmentID uint) (string, error)
	ValidateFunc   func(token string) (uint, error)
	TTLSecondsFunc func() int64
}

// NewMockTokenService creates a new MockTokenService with default behaviors
func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

// Issue mints a token
func (m *MockTokenService) Issue(establishmentID uint) (string, error) {
	if m.IssueFunc != nil {
		return m.IssueFunc(establishmentID)
	}
	// Default behavior: transparent fake token
	return fmt.Sprintf("token_%d", establishmentID), nil
}

// Validate checks a token and returns its subject
func (m *MockTokenService) Validate(token string) (uint, error) {
	if m.ValidateFunc != nil {
		return m.ValidateFunc(token)
	}
	// Default behavior: accepts tokens in the fake token format
	raw, ok := strings.CutPrefix(token, "token_")
	if !ok {
		return 0, domain.ErrTokenInvalid
	}
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, domain.ErrTokenInvalid
	}
	return uint(id), nil
}

// TTLSeconds returns the configured token lifetime
func (m *MockTokenService) TTLSeconds() int64 {
	if m.TTLSecondsFunc != nil {
		return m.TTLSecondsFunc()
	}
	return 3600
}

// Compile-time interface compliance verification
var _ domain.TokenService = (*MockTokenService)(nil)
