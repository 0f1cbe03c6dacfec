package services

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/deadloked8999/e-bar/domain"
)

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	estRepo     domain.EstablishmentRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	limiter     domain.LoginRateLimiter
}

// NewAuthService creates a new auth service
func NewAuthService(
	estRepo domain.EstablishmentRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	limiter domain.LoginRateLimiter,
) domain.AuthService {
	return &AuthServiceImpl{
		estRepo:     estRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		limiter:     limiter,
	}
}

// Register implements domain.AuthService. Username and email must be
// unique before any document can reference the establishment.
func (s *AuthServiceImpl) Register(ctx context.Context, est *domain.Establishment, password string) (*domain.AuthResult, error) {
	if existing, err := s.estRepo.FindByUsername(ctx, est.Username); err == nil && existing != nil {
		return nil, domain.ErrEstablishmentExists
	}
	if existing, err := s.estRepo.FindByEmail(ctx, est.Email); err == nil && existing != nil {
		return nil, domain.ErrEstablishmentExists
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	est.PasswordHash = hashedPassword

	if est.Role == "" {
		est.Role = "user"
	}
	if est.Status == "" {
		est.Status = domain.StatusPending
	}

	if err := s.estRepo.Create(ctx, est); err != nil {
		return nil, fmt.Errorf("failed to create establishment: %w", err)
	}

	accessToken, err := s.tokenSvc.Issue(est.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	log.Printf("ESTABLISHMENT_REGISTERED: id=%d username=%s timestamp=%s",
		est.ID, est.Username, time.Now().UTC().Format(time.RFC3339))

	return &domain.AuthResult{
		Establishment: est,
		AccessToken:   accessToken,
		ExpiresIn:     s.tokenSvc.TTLSeconds(),
	}, nil
}

// Login implements domain.AuthService. The rate limiter is consulted
// before credentials are touched; every non-throttled attempt counts
// toward the window regardless of outcome. Login failure never reveals
// whether the identifier exists.
func (s *AuthServiceImpl) Login(ctx context.Context, identifier, password string) (*domain.AuthResult, error) {
	key := strings.ToLower(identifier)

	allowed, err := s.limiter.Allow(ctx, key)
	if err != nil {
		return nil, fmt.Errorf("rate limiter failure: %w", err)
	}
	if !allowed {
		return nil, domain.ErrRateLimited
	}

	if err := s.limiter.RecordAttempt(ctx, key); err != nil {
		return nil, fmt.Errorf("rate limiter failure: %w", err)
	}

	est, err := s.estRepo.FindByIdentifier(ctx, identifier)
	if err != nil {
		if err == domain.ErrEstablishmentNotFound {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up establishment: %w", err)
	}

	if !s.passwordSvc.Verify(est.PasswordHash, password) {
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.tokenSvc.Issue(est.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &domain.AuthResult{
		Establishment: est,
		AccessToken:   accessToken,
		ExpiresIn:     s.tokenSvc.TTLSeconds(),
	}, nil
}

// GetProfile implements domain.AuthService
func (s *AuthServiceImpl) GetProfile(ctx context.Context, id uint) (*domain.Establishment, error) {
	return s.estRepo.FindByID(ctx, id)
}

// ChangePassword implements domain.AuthService. The current password must
// verify against the stored hash before the new one is installed.
func (s *AuthServiceImpl) ChangePassword(ctx context.Context, id uint, currentPassword, newPassword string) error {
	est, err := s.estRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}

	if !s.passwordSvc.Verify(est.PasswordHash, currentPassword) {
		return domain.ErrInvalidCredentials
	}

	newHash, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.estRepo.UpdatePasswordHash(ctx, est.ID, newHash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	log.Printf("PASSWORD_CHANGED: establishment_id=%d timestamp=%s",
		est.ID, time.Now().UTC().Format(time.RFC3339))
	return nil
}
