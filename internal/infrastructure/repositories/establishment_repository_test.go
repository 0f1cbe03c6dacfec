package repositories

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/deadloked8999/e-bar/domain"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}

	if err := db.AutoMigrate(&DBEstablishment{}, &DBDocument{}, &DBResetToken{}); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}

	return db
}

func seedEstablishment(t *testing.T, repo domain.EstablishmentRepository) *domain.Establishment {
	t.Helper()
	est := &domain.Establishment{
		Name:         "Ivan Petrov",
		Username:     "bar-aurora",
		PasswordHash: "hashed_password",
		Position:     "owner",
		Phone:        "+79990001122",
		Email:        "owner@aurora.bar",
		BusinessName: "Aurora",
		BusinessType: "bar",
		Address:      "Nevsky 1",
		INN:          "7701234567",
		OGRN:         "1027700132195",
		Role:         "user",
		Status:       domain.StatusPending,
	}
	if err := repo.Create(context.Background(), est); err != nil {
		t.Fatalf("failed to seed establishment: %v", err)
	}
	return est
}

func TestEstablishmentRepositoryImpl_Create(t *testing.T) {
	repo := NewEstablishmentRepository(setupTestDB(t))

	est := seedEstablishment(t, repo)
	if est.ID == 0 {
		t.Error("created establishment has no id")
	}

	dup := &domain.Establishment{
		Name:         "Copy",
		Username:     "bar-aurora",
		PasswordHash: "hash",
		Email:        "other@example.com",
		BusinessName: "Copy",
	}
	if err := repo.Create(context.Background(), dup); err == nil {
		t.Error("expected unique constraint violation for duplicate username")
	}
}

func TestEstablishmentRepositoryImpl_FindByIdentifier(t *testing.T) {
	repo := NewEstablishmentRepository(setupTestDB(t))
	seedEstablishment(t, repo)

	tests := []struct {
		name          string
		identifier    string
		expectedError error
	}{
		{
			name:       "find by username",
			identifier: "bar-aurora",
		},
		{
			name:       "find by email",
			identifier: "owner@aurora.bar",
		},
		{
			name:          "unknown identifier",
			identifier:    "nobody",
			expectedError: domain.ErrEstablishmentNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			est, err := repo.FindByIdentifier(context.Background(), tt.identifier)
			if err != tt.expectedError {
				t.Fatalf("error = %v, want %v", err, tt.expectedError)
			}
			if tt.expectedError == nil && est.Username != "bar-aurora" {
				t.Errorf("username = %q, want bar-aurora", est.Username)
			}
		})
	}
}

func TestEstablishmentRepositoryImpl_FindByID(t *testing.T) {
	repo := NewEstablishmentRepository(setupTestDB(t))
	seeded := seedEstablishment(t, repo)

	est, err := repo.FindByID(context.Background(), seeded.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if est.Email != "owner@aurora.bar" {
		t.Errorf("email = %q, want owner@aurora.bar", est.Email)
	}

	if _, err := repo.FindByID(context.Background(), 9999); err != domain.ErrEstablishmentNotFound {
		t.Errorf("error = %v, want ErrEstablishmentNotFound", err)
	}
}

func TestEstablishmentRepositoryImpl_Update(t *testing.T) {
	repo := NewEstablishmentRepository(setupTestDB(t))
	est := seedEstablishment(t, repo)

	est.BusinessName = "Aurora Renamed"
	est.LogoPath = "/uploads/logo.png"
	if err := repo.Update(context.Background(), est); err != nil {
		t.Fatalf("Update() error = %v", err)
	}

	got, err := repo.FindByID(context.Background(), est.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.BusinessName != "Aurora Renamed" {
		t.Errorf("business name = %q, want Aurora Renamed", got.BusinessName)
	}
	if got.LogoPath != "/uploads/logo.png" {
		t.Errorf("logo path = %q, want /uploads/logo.png", got.LogoPath)
	}
}

func TestEstablishmentRepositoryImpl_UpdatePasswordHash(t *testing.T) {
	repo := NewEstablishmentRepository(setupTestDB(t))
	est := seedEstablishment(t, repo)

	if err := repo.UpdatePasswordHash(context.Background(), est.ID, "hashed_newpassword"); err != nil {
		t.Fatalf("UpdatePasswordHash() error = %v", err)
	}

	got, err := repo.FindByID(context.Background(), est.ID)
	if err != nil {
		t.Fatalf("FindByID() error = %v", err)
	}
	if got.PasswordHash != "hashed_newpassword" {
		t.Errorf("password hash = %q, want hashed_newpassword", got.PasswordHash)
	}

	if err := repo.UpdatePasswordHash(context.Background(), 9999, "hash"); err != domain.ErrEstablishmentNotFound {
		t.Errorf("error = %v, want ErrEstablishmentNotFound", err)
	}
}
