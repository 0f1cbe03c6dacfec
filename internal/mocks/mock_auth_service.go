package mocks

import (
	"context"

	"github.com/deadloked8999/e-bar/domain"
)

// MockAuthService implements domain.AuthService for testing
type MockAuthService struct {
	RegisterFunc       func(ctx context.Context, est *domain.Establishment, password string) (*domain.AuthResult, error)
	LoginFunc          func(ctx context.Context, identifier, password string) (*domain.AuthResult, error)
	GetProfileFunc     func(ctx context.Context, id uint) (*domain.Establishment, error)
	ChangePasswordFunc func(ctx context.Context, id uint, currentPassword, newPassword string) error
}

// NewMockAuthService creates a new MockAuthService with default behaviors
func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

// Register registers an establishment
func (m *MockAuthService) Register(ctx context.Context, est *domain.Establishment, password string) (*domain.AuthResult, error) {
	if m.RegisterFunc != nil {
		return m.RegisterFunc(ctx, est, password)
	}
	// Default behavior: success with fake token
	est.ID = 1
	return &domain.AuthResult{Establishment: est, AccessToken: "token_1", ExpiresIn: 3600}, nil
}

// Login authenticates an establishment
func (m *MockAuthService) Login(ctx context.Context, identifier, password string) (*domain.AuthResult, error) {
	if m.LoginFunc != nil {
		return m.LoginFunc(ctx, identifier, password)
	}
	// Default behavior: rejected
	return nil, domain.ErrInvalidCredentials
}

// GetProfile returns an establishment profile
func (m *MockAuthService) GetProfile(ctx context.Context, id uint) (*domain.Establishment, error) {
	if m.GetProfileFunc != nil {
		return m.GetProfileFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrEstablishmentNotFound
}

// ChangePassword replaces an establishment's password
func (m *MockAuthService) ChangePassword(ctx context.Context, id uint, currentPassword, newPassword string) error {
	if m.ChangePasswordFunc != nil {
		return m.ChangePasswordFunc(ctx, id, currentPassword, newPassword)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
