package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"log"
	"time"

	"github.com/deadloked8999/e-bar/domain"
)

// PasswordResetServiceImpl implements domain.PasswordResetService
type PasswordResetServiceImpl struct {
	estRepo     domain.EstablishmentRepository
	tokenRepo   domain.ResetTokenRepository
	passwordSvc domain.PasswordService
	notifySvc   domain.NotificationService
	ttl         time.Duration
}

// NewPasswordResetService creates a new password reset service
func NewPasswordResetService(
	estRepo domain.EstablishmentRepository,
	tokenRepo domain.ResetTokenRepository,
	passwordSvc domain.PasswordService,
	notifySvc domain.NotificationService,
	ttl time.Duration,
) domain.PasswordResetService {
	return &PasswordResetServiceImpl{
		estRepo:     estRepo,
		tokenRepo:   tokenRepo,
		passwordSvc: passwordSvc,
		notifySvc:   notifySvc,
		ttl:         ttl,
	}
}

// Issue implements domain.PasswordResetService. An unknown email is a
// silent no-op: the HTTP layer answers identically either way, so the
// endpoint cannot be used as an existence oracle. Earlier unexpired
// tokens stay live; each is independently consumable until it expires.
func (s *PasswordResetServiceImpl) Issue(ctx context.Context, email string) error {
	est, err := s.estRepo.FindByEmail(ctx, email)
	if err != nil {
		if err == domain.ErrEstablishmentNotFound {
			log.Printf("RESET_REQUEST_UNKNOWN_EMAIL: timestamp=%s", time.Now().UTC().Format(time.RFC3339))
			return nil
		}
		return fmt.Errorf("failed to look up establishment: %w", err)
	}

	token, err := generateResetToken()
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	now := time.Now()
	resetToken := &domain.ResetToken{
		Token:           token,
		EstablishmentID: est.ID,
		CreatedAt:       now,
		ExpiresAt:       now.Add(s.ttl),
		Used:            false,
	}

	if err := s.tokenRepo.Create(ctx, resetToken); err != nil {
		return fmt.Errorf("failed to persist reset token: %w", err)
	}

	body := fmt.Sprintf("Use this token to reset your password: %s. It is valid for %d minutes and can be used once.",
		token, int(s.ttl.Minutes()))
	// The token goes to the registered phone when there is one; email is
	// the fallback channel.
	if est.Phone != "" {
		if err := s.notifySvc.SendSMS(est.Phone, body); err != nil {
			return fmt.Errorf("failed to deliver reset token: %w", err)
		}
	} else if err := s.notifySvc.SendEmail(est.Email, "Password reset", body); err != nil {
		return fmt.Errorf("failed to deliver reset token: %w", err)
	}

	log.Printf("RESET_TOKEN_ISSUED: establishment_id=%d expires_at=%s",
		est.ID, resetToken.ExpiresAt.UTC().Format(time.RFC3339))
	return nil
}

// Consume implements domain.PasswordResetService. Failure precedence is
// fixed: unknown token, then already used, then expired. The used flip
// and the credential change commit in one transaction; a racing
// consumer of the same token observes ErrResetTokenUsed.
func (s *PasswordResetServiceImpl) Consume(ctx context.Context, token, newPassword string) error {
	resetToken, err := s.tokenRepo.FindByToken(ctx, token)
	if err != nil {
		return err
	}

	if resetToken.Used {
		return domain.ErrResetTokenUsed
	}

	if time.Now().After(resetToken.ExpiresAt) {
		return domain.ErrResetTokenExpired
	}

	newHash, err := s.passwordSvc.Hash(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash new password: %w", err)
	}

	if err := s.tokenRepo.Consume(ctx, token, resetToken.EstablishmentID, newHash); err != nil {
		return err
	}

	log.Printf("PASSWORD_RESET: establishment_id=%d timestamp=%s",
		resetToken.EstablishmentID, time.Now().UTC().Format(time.RFC3339))
	return nil
}

// generateResetToken returns a 256-bit unguessable token
func generateResetToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
