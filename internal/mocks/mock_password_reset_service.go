package mocks

import (
	"context"

	"github.com/deadloked8999/e-bar/domain"
)

// MockPasswordResetService implements domain.PasswordResetService for testing
type MockPasswordResetService struct {
	IssueFunc   func(ctx context.Context, email string) error
	ConsumeFunc func(ctx context.Context, token, newPassword string) error
}

// NewMockPasswordResetService creates a new MockPasswordResetService with default behaviors
func NewMockPasswordResetService() *MockPasswordResetService {
	return &MockPasswordResetService{}
}

// Issue starts the forgot-password flow
func (m *MockPasswordResetService) Issue(ctx context.Context, email string) error {
	if m.IssueFunc != nil {
		return m.IssueFunc(ctx, email)
	}
	// Default behavior: success
	return nil
}

// Consume redeems a reset token
func (m *MockPasswordResetService) Consume(ctx context.Context, token, newPassword string) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, token, newPassword)
	}
	// Default behavior: unknown token
	return domain.ErrResetTokenInvalid
}

// Compile-time interface compliance verification
var _ domain.PasswordResetService = (*MockPasswordResetService)(nil)
