package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/deadloked8999/e-bar/domain"
)

// ResetTokenRepositoryImpl implements domain.ResetTokenRepository using GORM
type ResetTokenRepositoryImpl struct {
	db *gorm.DB
}

// DBResetToken represents the database model for ResetToken (with GORM tags).
// Rows are never deleted; used tokens stay for audit.
type DBResetToken struct {
	ID              uint      `gorm:"primaryKey"`
	Token           string    `gorm:"uniqueIndex;size:128;not null"`
	EstablishmentID uint      `gorm:"index;not null"`
	CreatedAt       time.Time `gorm:"not null"`
	ExpiresAt       time.Time `gorm:"not null"`
	Used            bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (DBResetToken) TableName() string {
	return "password_reset_tokens"
}

// NewResetTokenRepository creates a new reset token repository
func NewResetTokenRepository(db *gorm.DB) domain.ResetTokenRepository {
	return &ResetTokenRepositoryImpl{db: db}
}

// Create implements domain.ResetTokenRepository
func (r *ResetTokenRepositoryImpl) Create(ctx context.Context, token *domain.ResetToken) error {
	dbToken := &DBResetToken{
		Token:           token.Token,
		EstablishmentID: token.EstablishmentID,
		CreatedAt:       token.CreatedAt,
		ExpiresAt:       token.ExpiresAt,
		Used:            token.Used,
	}
	if err := r.db.WithContext(ctx).Create(dbToken).Error; err != nil {
		return err
	}
	token.ID = dbToken.ID
	return nil
}

// FindByToken implements domain.ResetTokenRepository
func (r *ResetTokenRepositoryImpl) FindByToken(ctx context.Context, token string) (*domain.ResetToken, error) {
	var dbToken DBResetToken
	err := r.db.WithContext(ctx).Where("token = ?", token).First(&dbToken).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrResetTokenInvalid
		}
		return nil, err
	}
	return r.dbToDomain(&dbToken), nil
}

// FindLatestByEstablishment implements domain.ResetTokenRepository
func (r *ResetTokenRepositoryImpl) FindLatestByEstablishment(ctx context.Context, establishmentID uint) (*domain.ResetToken, error) {
	var dbToken DBResetToken
	err := r.db.WithContext(ctx).
		Where("establishment_id = ?", establishmentID).
		Order("created_at DESC").
		First(&dbToken).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrResetTokenInvalid
		}
		return nil, err
	}
	return r.dbToDomain(&dbToken), nil
}

// Consume implements domain.ResetTokenRepository. The used flip and the
// password replacement commit together or not at all. The guarded UPDATE
// on used=false makes racing consumers lose with zero rows affected.
func (r *ResetTokenRepositoryImpl) Consume(ctx context.Context, token string, establishmentID uint, newHash string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&DBResetToken{}).
			Where("token = ? AND used = ?", token, false).
			Update("used", true)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrResetTokenUsed
		}

		res = tx.Model(&DBEstablishment{}).
			Where("id = ?", establishmentID).
			Update("password", newHash)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return domain.ErrEstablishmentNotFound
		}
		return nil
	})
}

func (r *ResetTokenRepositoryImpl) dbToDomain(dbToken *DBResetToken) *domain.ResetToken {
	return &domain.ResetToken{
		ID:              dbToken.ID,
		Token:           dbToken.Token,
		EstablishmentID: dbToken.EstablishmentID,
		CreatedAt:       dbToken.CreatedAt,
		ExpiresAt:       dbToken.ExpiresAt,
		Used:            dbToken.Used,
	}
}
