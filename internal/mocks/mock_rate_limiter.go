package mocks

import (
	"context"

	"github.com/deadloked8999/e-bar/domain"
)

// MockRateLimiter implements domain.LoginRateLimiter for testing
type MockRateLimiter struct {
	AllowFunc         func(ctx context.Context, identifier string) (bool, error)
	RecordAttemptFunc func(ctx context.Context, identifier string) error
}

// NewMockRateLimiter creates a new MockRateLimiter with default behaviors
func NewMockRateLimiter() *MockRateLimiter {
	return &MockRateLimiter{}
}

// Allow reports whether the identifier may attempt a login
func (m *MockRateLimiter) Allow(ctx context.Context, identifier string) (bool, error) {
	if m.AllowFunc != nil {
		return m.AllowFunc(ctx, identifier)
	}
	// Default behavior: never throttled
	return true, nil
}

// RecordAttempt counts one attempt for the identifier
func (m *MockRateLimiter) RecordAttempt(ctx context.Context, identifier string) error {
	if m.RecordAttemptFunc != nil {
		return m.RecordAttemptFunc(ctx, identifier)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.LoginRateLimiter = (*MockRateLimiter)(nil)
