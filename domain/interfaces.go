package domain

import "context"

// EstablishmentRepository defines establishment data access operations
type EstablishmentRepository interface {
	Create(ctx context.Context, est *Establishment) error
	FindByIdentifier(ctx context.Context, usernameOrEmail string) (*Establishment, error)
	FindByEmail(ctx context.Context, email string) (*Establishment, error)
	FindByUsername(ctx context.Context, username string) (*Establishment, error)
	FindByID(ctx context.Context, id uint) (*Establishment, error)
	Update(ctx context.Context, est *Establishment) error
	UpdatePasswordHash(ctx context.Context, id uint, hash string) error
}

// DocumentRepository defines document data access operations
type DocumentRepository interface {
	Create(ctx context.Context, doc *Document) error
	FindByID(ctx context.Context, id uint) (*Document, error)
	FindByEstablishment(ctx context.Context, establishmentID uint) ([]Document, error)
	FindRequiredByEstablishment(ctx context.Context, establishmentID uint) ([]Document, error)
	UpdateStatus(ctx context.Context, id uint, status string) error
	Delete(ctx context.Context, id uint) error
}

// ResetTokenRepository defines reset token persistence. Consume marks
// the token used and installs the new password hash in one transaction.
type ResetTokenRepository interface {
	Create(ctx context.Context, token *ResetToken) error
	FindByToken(ctx context.Context, token string) (*ResetToken, error)
	FindLatestByEstablishment(ctx context.Context, establishmentID uint) (*ResetToken, error)
	Consume(ctx context.Context, token string, establishmentID uint, newHash string) error
}

// AuthService defines authentication business logic
type AuthService interface {
	Register(ctx context.Context, est *Establishment, password string) (*AuthResult, error)
	Login(ctx context.Context, identifier, password string) (*AuthResult, error)
	GetProfile(ctx context.Context, id uint) (*Establishment, error)
	ChangePassword(ctx context.Context, id uint, currentPassword, newPassword string) error
}

// PasswordResetService defines the forgot/reset password flow
type PasswordResetService interface {
	Issue(ctx context.Context, email string) error
	Consume(ctx context.Context, token, newPassword string) error
}

// PasswordService defines password hashing operations
type PasswordService interface {
	Hash(password string) (string, error)
	Verify(hashedPassword, password string) bool
}

// TokenService defines bearer token operations. Validate fails closed:
// any invalid token yields ErrTokenInvalid.
type TokenService interface {
	Issue(establishmentID uint) (string, error)
	Validate(token string) (uint, error)
	TTLSeconds() int64
}

// LoginRateLimiter bounds login attempts per identifier within a
// fixed window. Allow never blocks; denial is immediate.
type LoginRateLimiter interface {
	Allow(ctx context.Context, identifier string) (bool, error)
	RecordAttempt(ctx context.Context, identifier string) error
}

// AuthorizationGuard combines token validation with an ownership check
type AuthorizationGuard interface {
	// Authorize returns the authenticated establishment id when the
	// token is valid and its subject matches resourceOwnerID.
	Authorize(token string, resourceOwnerID uint) (uint, error)
	// Authenticate validates the token only (loose read policy).
	Authenticate(token string) (uint, error)
}

// NotificationService defines out-of-band delivery operations
type NotificationService interface {
	SendSMS(to, message string) error
	SendEmail(to, subject, body string) error
}

// FileStore abstracts upload storage for documents and logos
type FileStore interface {
	Save(filename string, data []byte) (string, error)
	Remove(path string) error
}
