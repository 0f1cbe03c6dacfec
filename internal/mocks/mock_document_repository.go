package mocks

import (
	"context"

	"github.com/deadloked8999/e-bar/domain"
)

// MockDocumentRepository implements domain.DocumentRepository for testing
type MockDocumentRepository struct {
	CreateFunc                      func(ctx context.Context, doc *domain.Document) error
	FindByIDFunc                    func(ctx context.Context, id uint) (*domain.Document, error)
	FindByEstablishmentFunc         func(ctx context.Context, establishmentID uint) ([]domain.Document, error)
	FindRequiredByEstablishmentFunc func(ctx context.Context, establishmentID uint) ([]domain.Document, error)
	UpdateStatusFunc                func(ctx context.Context, id uint, status string) error
	DeleteFunc                      func(ctx context.Context, id uint) error
}

// NewMockDocumentRepository creates a new MockDocumentRepository with default behaviors
func NewMockDocumentRepository() *MockDocumentRepository {
	return &MockDocumentRepository{}
}

// Create records a document row
func (m *MockDocumentRepository) Create(ctx context.Context, doc *domain.Document) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, doc)
	}
	// Default behavior: success
	return nil
}

// FindByID finds a document by ID
func (m *MockDocumentRepository) FindByID(ctx context.Context, id uint) (*domain.Document, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	// Default behavior: not found
	return nil, domain.ErrDocumentNotFound
}

// FindByEstablishment lists documents for an establishment
func (m *MockDocumentRepository) FindByEstablishment(ctx context.Context, establishmentID uint) ([]domain.Document, error) {
	if m.FindByEstablishmentFunc != nil {
		return m.FindByEstablishmentFunc(ctx, establishmentID)
	}
	// Default behavior: empty list
	return nil, nil
}

// FindRequiredByEstablishment lists required documents for an establishment
func (m *MockDocumentRepository) FindRequiredByEstablishment(ctx context.Context, establishmentID uint) ([]domain.Document, error) {
	if m.FindRequiredByEstablishmentFunc != nil {
		return m.FindRequiredByEstablishmentFunc(ctx, establishmentID)
	}
	// Default behavior: empty list
	return nil, nil
}

// UpdateStatus sets a document's review status
func (m *MockDocumentRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	if m.UpdateStatusFunc != nil {
		return m.UpdateStatusFunc(ctx, id, status)
	}
	// Default behavior: success
	return nil
}

// Delete removes a document row
func (m *MockDocumentRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	// Default behavior: success
	return nil
}

// Compile-time interface compliance verification
var _ domain.DocumentRepository = (*MockDocumentRepository)(nil)
