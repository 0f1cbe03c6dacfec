package repositories

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/deadloked8999/e-bar/domain"
)

// DocumentRepositoryImpl implements domain.DocumentRepository using GORM
type DocumentRepositoryImpl struct {
	db *gorm.DB
}

// DBDocument represents the database model for Document (with GORM tags)
type DBDocument struct {
	ID              uint   `gorm:"primaryKey"`
	EstablishmentID uint   `gorm:"index;not null"`
	Group           string `gorm:"column:document_group;size:64;not null"`
	Type            string `gorm:"column:document_type;size:64;not null"`
	Name            string `gorm:"column:document_name;size:255;not null"`
	FilePath        string `gorm:"size:512"`
	FileName        string `gorm:"size:255"`
	Required        bool   `gorm:"default:false"`
	Uploaded        bool   `gorm:"default:false"`
	Status          string `gorm:"size:32;default:pending"`
	UploadedAt      time.Time
	CreatedAt       time.Time
}

// TableName returns the table name for GORM
func (DBDocument) TableName() string {
	return "documents"
}

// NewDocumentRepository creates a new document repository
func NewDocumentRepository(db *gorm.DB) domain.DocumentRepository {
	return &DocumentRepositoryImpl{db: db}
}

// Create implements domain.DocumentRepository
func (r *DocumentRepositoryImpl) Create(ctx context.Context, doc *domain.Document) error {
	dbDoc := r.domainToDB(doc)
	if err := r.db.WithContext(ctx).Create(dbDoc).Error; err != nil {
		return err
	}
	doc.ID = dbDoc.ID
	return nil
}

// FindByID implements domain.DocumentRepository
func (r *DocumentRepositoryImpl) FindByID(ctx context.Context, id uint) (*domain.Document, error) {
	var dbDoc DBDocument
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&dbDoc).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, domain.ErrDocumentNotFound
		}
		return nil, err
	}
	return r.dbToDomain(&dbDoc), nil
}

// FindByEstablishment implements domain.DocumentRepository
func (r *DocumentRepositoryImpl) FindByEstablishment(ctx context.Context, establishmentID uint) ([]domain.Document, error) {
	var dbDocs []DBDocument
	err := r.db.WithContext(ctx).Where("establishment_id = ?", establishmentID).Find(&dbDocs).Error
	if err != nil {
		return nil, err
	}
	docs := make([]domain.Document, 0, len(dbDocs))
	for i := range dbDocs {
		docs = append(docs, *r.dbToDomain(&dbDocs[i]))
	}
	return docs, nil
}

// FindRequiredByEstablishment implements domain.DocumentRepository
func (r *DocumentRepositoryImpl) FindRequiredByEstablishment(ctx context.Context, establishmentID uint) ([]domain.Document, error) {
	var dbDocs []DBDocument
	err := r.db.WithContext(ctx).
		Where("establishment_id = ? AND required = ?", establishmentID, true).
		Find(&dbDocs).Error
	if err != nil {
		return nil, err
	}
	docs := make([]domain.Document, 0, len(dbDocs))
	for i := range dbDocs {
		docs = append(docs, *r.dbToDomain(&dbDocs[i]))
	}
	return docs, nil
}

// UpdateStatus implements domain.DocumentRepository
func (r *DocumentRepositoryImpl) UpdateStatus(ctx context.Context, id uint, status string) error {
	res := r.db.WithContext(ctx).Model(&DBDocument{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrDocumentNotFound
	}
	return nil
}

// Delete implements domain.DocumentRepository
func (r *DocumentRepositoryImpl) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&DBDocument{}, id).Error
}

func (r *DocumentRepositoryImpl) domainToDB(doc *domain.Document) *DBDocument {
	return &DBDocument{
		ID:              doc.ID,
		EstablishmentID: doc.EstablishmentID,
		Group:           doc.Group,
		Type:            doc.Type,
		Name:            doc.Name,
		FilePath:        doc.FilePath,
		FileName:        doc.FileName,
		Required:        doc.Required,
		Uploaded:        doc.Uploaded,
		Status:          doc.Status,
		UploadedAt:      doc.UploadedAt,
	}
}

func (r *DocumentRepositoryImpl) dbToDomain(dbDoc *DBDocument) *domain.Document {
	return &domain.Document{
		ID:              dbDoc.ID,
		EstablishmentID: dbDoc.EstablishmentID,
		Group:           dbDoc.Group,
		Type:            dbDoc.Type,
		Name:            dbDoc.Name,
		FilePath:        dbDoc.FilePath,
		FileName:        dbDoc.FileName,
		Required:        dbDoc.Required,
		Uploaded:        dbDoc.Uploaded,
		Status:          dbDoc.Status,
		UploadedAt:      dbDoc.UploadedAt,
		CreatedAt:       dbDoc.CreatedAt,
	}
}
