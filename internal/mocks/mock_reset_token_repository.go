package mocks

import (
	"context"

	"github.com/deadloked8999/e-bar/domain"
)

// MockResetTokenRepository implements domain.ResetTokenRepository for testing
type MockResetTokenRepository struct {
	CreateFunc                    func(ctx context.Context, token *domain.ResetToken) error
	FindByTokenFunc               func(ctx context.Context, token string) (*domain.ResetToken, error)
	FindLatestByEstablishmentFunc func(ctx context.Context, establishmentID uint) (*domain.ResetToken, error)
	ConsumeFunc                   func(ctx context.Context, token string, establishmentID uint, newHash string) error
}

// NewMockResetTokenRepository creates a new MockResetTokenRepository with default behaviors
func NewMockResetTokenRepository() *MockResetTokenRepository {
	return &MockResetTokenRepository{}
}

// Create persists a reset token
func (m *MockResetTokenRepository) Create(ctx context.Context, token *domain.ResetToken) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, token)
	}
	// Default behavior: success
	return nil
}

// FindByToken finds a reset token by value
func (m *MockResetTokenRepository) FindByToken(ctx context.Context, token string) (*domain.ResetToken, error) {
	if m.FindByTokenFunc != nil {
		return m.FindByTokenFunc(ctx, token)
	}
	// Default behavior: not found
	return nil, domain.ErrResetTokenInvalid
}

// FindLatestByEstablishment finds the most recent token for an establishment
func (m *MockResetTokenRepository) FindLatestByEstablishment(ctx context.Context, establishmentID uint) (*domain.ResetToken, error) {
	if m.FindLatestByEstablishmentFunc != nil {
		return m.FindLatestByEstablishmentFunc(ctx, establishmentID)
	}
	// Default behavior: not found
	return nil, domain.ErrResetTokenInvalid
}

// Consume marks the token used and installs the new hash
func (m *MockResetTokenRepository) Consume(ctx context.Context, token string, establishmentID uint, newHash string) error {
	if m.ConsumeFunc != nil {
		return m.ConsumeFunc(ctx, token, establishmentID, newHash)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.ResetTokenRepository = (*MockResetTokenRepository)(nil)
