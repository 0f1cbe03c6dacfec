package mocks

import (
	"context"

	"github.com/deadloked8999/e-bar/domain"
)

// MockEstablishmentRepository implements domain.EstablishmentRepository for testing
type MockEstablishmentRepository struct {
	CreateFunc             func(ctx context.Context, est *domain.Establishment) error
	FindByIdentifierFunc   func(ctx context.Context, usernameOrEmail string) (*domain.Establishment, error)
	FindByEmailFunc        func(ctx context.Context, email string) (*domain.Establishment, error)
	FindByUsernameFunc     func(ctx context.Context, username string) (*domain.Establishment, error)
	FindByIDFunc           func(ctx context.Context, id uint) (*domain.Establishment, error)
	UpdateFunc             func(ctx context.Context, est *domain.Establishment) error
	UpdatePasswordHashFunc func(ctx context.Context, id uint, hash string) error
}

// NewMockEstablishmentRepository creates a new MockEstablishmentRepository with default behaviors
func NewMockEstablishmentRepository() *MockEstablishmentRepository {
	return &MockEstablishmentRepository{}
}

// Create creates a new establishment
func (m *MockEstablishmentRepository) Create(ctx context.Context, est *domain.Establishment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, est)
	}
	// Default behavior: success
	return nil
}

// FindByIdentifier finds an establishment by username or email
func (m *MockEstablishmentRepository) FindByIdentifier(ctx context.Context, usernameOrEmail string) (*domain.Establishment, error) {
	if m.FindByIdentifierFunc != nil {
		return m.FindByIdentifierFunc(ctx, usernameOrEmail)
	}
	// Default behavior: not found
	return nil, domain.ErrEstablishmentNotFound
}

// FindByEmail finds an establishment by email
func (m *MockEstablishmentRepository) FindByEmail(ctx context.Context, email string) (*domain.Establishment, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	// Default behavior: not found
	return nil, domain.ErrEstablishmentNotFound
}

// FindByUsername finds an establishment by username
func (m *MockEstablishmentRepository) FindByUsername(ctx context.Context, username string) (*domain.Establishment, error) {
	if m.FindByUsernameFunc != nil {
		return m.FindByUsernameFunc(ctx, username)
	}
	// Default behavior: not found
	return nil, domain.ErrEstablishmentNotFound
}

// FindByID finds an establishment by ID
func (m *MockEstablishmentRepository) FindByID(ctx context.Context, id uint) (*domain.Establishment, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrEstablishmentNotFound
}

// Update updates an existing establishment
func (m *MockEstablishmentRepository) Update(ctx context.Context, est *domain.Establishment) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, est)
	}
	// Default behavior: success
	return nil
}

// UpdatePasswordHash replaces the stored credential hash
func (m *MockEstablishmentRepository) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	if m.UpdatePasswordHashFunc != nil {
		return m.UpdatePasswordHashFunc(ctx, id, hash)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.EstablishmentRepository = (*MockEstablishmentRepository)(nil)
