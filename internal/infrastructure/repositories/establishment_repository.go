package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/deadloked8999/e-bar/domain"
)

// EstablishmentRepositoryImpl implements domain.EstablishmentRepository using GORM
type EstablishmentRepositoryImpl struct {
	db *gorm.DB
}

// DBEstablishment represents the database model for Establishment (with GORM tags)
type DBEstablishment struct {
	ID           uint   `gorm:"primaryKey"`
	Name         string `gorm:"size:255;not null"`
	Username     string `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string `gorm:"column:password;not null"`
	Position     string `gorm:"size:255"`
	Phone        string `gorm:"size:32"`
	Email        string `gorm:"uniqueIndex;size:255;not null"`

	BusinessName  string `gorm:"size:255;not null"`
	BusinessType  string `gorm:"size:64"`
	BusinessPhone string `gorm:"size:32"`
	Website       string `gorm:"size:255"`
	LogoPath      string `gorm:"size:512"`
	Address       string `gorm:"size:512"`
	INN           string `gorm:"size:32"`
	OGRN          string `gorm:"size:32"`

	Role      string `gorm:"index;size:64;default:user"`
	Status    string `gorm:"size:32;default:pending"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName returns the table name for GORM
func (DBEstablishment) TableName() string {
	return "establishments"
}

// NewEstablishmentRepository creates a new establishment repository
func NewEstablishmentRepository(db *gorm.DB) domain.EstablishmentRepository {
	return &EstablishmentRepositoryImpl{db: db}
}

// Create implements domain.EstablishmentRepository
func (r *EstablishmentRepositoryImpl) Create(ctx context.Context, est *domain.Establishment) error {
	dbEst := r.domainToDB(est)
	if err := r.db.WithContext(ctx).Create(dbEst).Error; err != nil {
		return err
	}
	est.ID = dbEst.ID
	est.CreatedAt = dbEst.CreatedAt
	est.UpdatedAt = dbEst.UpdatedAt
	return nil
}

// FindByIdentifier implements domain.EstablishmentRepository. The login
// identifier matches either the username or the email.
func (r *EstablishmentRepositoryImpl) FindByIdentifier(ctx context.Context, usernameOrEmail string) (*domain.Establishment, error) {
	var dbEst DBEstablishment
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", usernameOrEmail, usernameOrEmail).
		First(&dbEst).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrEstablishmentNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbEst), nil
}

// FindByEmail implements domain.EstablishmentRepository
func (r *EstablishmentRepositoryImpl) FindByEmail(ctx context.Context, email string) (*domain.Establishment, error) {
	return r.findOne(ctx, "email = ?", email)
}

// FindByUsername implements domain.EstablishmentRepository
func (r *EstablishmentRepositoryImpl) FindByUsername(ctx context.Context, username string) (*domain.Establishment, error) {
	return r.findOne(ctx, "username = ?", username)
}

// FindByID implements domain.EstablishmentRepository
func (r *EstablishmentRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Establishment, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *EstablishmentRepositoryImpl) findOne(ctx context.Context, query string, arg interface{}) (*domain.Establishment, error) {
	var dbEst DBEstablishment
	err := r.db.WithContext(ctx).Where(query, arg).First(&dbEst).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrEstablishmentNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbEst), nil
}

// Update implements domain.EstablishmentRepository
func (r *EstablishmentRepositoryImpl) Update(ctx context.Context, est *domain.Establishment) error {
	dbEst := r.domainToDB(est)
	return r.db.WithContext(ctx).Save(dbEst).Error
}

// UpdatePasswordHash implements domain.EstablishmentRepository
func (r *EstablishmentRepositoryImpl) UpdatePasswordHash(ctx context.Context, id uint, hash string) error {
	res := r.db.WithContext(ctx).Model(&DBEstablishment{}).Where("id = ?", id).Update("password", hash)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrEstablishmentNotFound
	}
	return nil
}

// domainToDB converts domain establishment to database establishment
func (r *EstablishmentRepositoryImpl) domainToDB(est *domain.Establishment) *DBEstablishment {
	return &DBEstablishment{
		ID:            est.ID,
		Name:          est.Name,
		Username:      est.Username,
		PasswordHash:  est.PasswordHash,
		Position:      est.Position,
		Phone:         est.Phone,
		Email:         est.Email,
		BusinessName:  est.BusinessName,
		BusinessType:  est.BusinessType,
		BusinessPhone: est.BusinessPhone,
		Website:       est.Website,
		LogoPath:      est.LogoPath,
		Address:       est.Address,
		INN:           est.INN,
		OGRN:          est.OGRN,
		Role:          est.Role,
		Status:        est.Status,
	}
}

// dbToDomain converts database establishment to domain establishment
func (r *EstablishmentRepositoryImpl) dbToDomain(dbEst *DBEstablishment) *domain.Establishment {
	return &domain.Establishment{
		ID:            dbEst.ID,
		Name:          dbEst.Name,
		Username:      dbEst.Username,
		PasswordHash:  dbEst.PasswordHash,
		Position:      dbEst.Position,
		Phone:         dbEst.Phone,
		Email:         dbEst.Email,
		BusinessName:  dbEst.BusinessName,
		BusinessType:  dbEst.BusinessType,
		BusinessPhone: dbEst.BusinessPhone,
		Website:       dbEst.Website,
		LogoPath:      dbEst.LogoPath,
		Address:       dbEst.Address,
		INN:           dbEst.INN,
		OGRN:          dbEst.OGRN,
		Role:          dbEst.Role,
		Status:        dbEst.Status,
		CreatedAt:     dbEst.CreatedAt,
		UpdatedAt:     dbEst.UpdatedAt,
	}
}
