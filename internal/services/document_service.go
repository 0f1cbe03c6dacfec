package services

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/deadloked8999/e-bar/domain"
)

// documentGroups maps a document type to its group on the submission form
var documentGroups = map[string]string{
	"ogrn_inn":                     "founding",
	"charter":                      "founding",
	"registration_certificate":     "founding",
	"egryul_extract":               "founding",
	"authorized_capital":           "founding",
	"okved":                        "founding",
	"passport_power_of_attorney":   "founding",
	"general_director_appointment": "founding",
	"company_card":                 "founding",
	"alcohol_license":              "licenses",
	"lease_ownership":              "licenses",
	"egais":                        "licenses",
	"mchs_conclusion":              "additional",
	"rospotrebnadzor_conclusion":   "additional",
	"kkt_registration":             "financial",
	"bank_details":                 "financial",
	"fns_certificate":              "financial",
}

// documentNames maps a document type to its display name
var documentNames = map[string]string{
	"ogrn_inn":                     "OGRN/INN",
	"charter":                      "Charter",
	"registration_certificate":     "Registration certificate",
	"egryul_extract":               "EGRYUL extract",
	"authorized_capital":           "Authorized capital",
	"okved":                        "OKVED",
	"passport_power_of_attorney":   "Passport / power of attorney",
	"general_director_appointment": "General director appointment",
	"company_card":                 "Company card",
	"alcohol_license":              "Alcohol license",
	"lease_ownership":              "Lease / ownership agreement",
	"egais":                        "EGAIS",
	"mchs_conclusion":              "MChS conclusion",
	"rospotrebnadzor_conclusion":   "Rospotrebnadzor conclusion",
	"kkt_registration":             "KKT registration",
	"bank_details":                 "Bank details",
	"fns_certificate":              "FNS certificate",
}

// DocumentStats aggregates document counts per status for an establishment
type DocumentStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Verified int `json:"verified"`
	Rejected int `json:"rejected"`
}

// DocumentService handles document upload, listing and verification.
// Ownership is enforced by the caller via the authorization guard; this
// service trusts the establishment id it is given.
type DocumentService struct {
	docRepo     domain.DocumentRepository
	estRepo     domain.EstablishmentRepository
	store       domain.FileStore
	allowedExts map[string]bool
}

// NewDocumentService creates a new document service
func NewDocumentService(docRepo domain.DocumentRepository, estRepo domain.EstablishmentRepository, store domain.FileStore, allowedExts []string) *DocumentService {
	exts := make(map[string]bool, len(allowedExts))
	for _, e := range allowedExts {
		exts[strings.ToLower(e)] = true
	}
	return &DocumentService{
		docRepo:     docRepo,
		estRepo:     estRepo,
		store:       store,
		allowedExts: exts,
	}
}

// Upload validates the file extension against the whitelist, stores the
// file and records the document row.
func (s *DocumentService) Upload(ctx context.Context, establishmentID uint, docType, filename string, data []byte) (*domain.Document, error) {
	if _, err := s.estRepo.FindByID(ctx, establishmentID); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(filename))
	if !s.allowedExts[ext] {
		return nil, domain.ErrFileTypeNotAllowed
	}

	group, ok := documentGroups[docType]
	if !ok {
		group = "additional"
	}
	name, ok := documentNames[docType]
	if !ok {
		name = docType
	}

	path, err := s.store.Save(filename, data)
	if err != nil {
		return nil, fmt.Errorf("failed to store document: %w", err)
	}

	doc := &domain.Document{
		EstablishmentID: establishmentID,
		Group:           group,
		Type:            docType,
		Name:            name,
		FilePath:        path,
		FileName:        filename,
		Uploaded:        true,
		Status:          domain.StatusPending,
		UploadedAt:      time.Now(),
	}

	if err := s.docRepo.Create(ctx, doc); err != nil {
		// Row creation failed; the stored file is orphaned, remove it
		_ = s.store.Remove(path)
		return nil, fmt.Errorf("failed to record document: %w", err)
	}

	return doc, nil
}

// Get returns one document by id
func (s *DocumentService) Get(ctx context.Context, id uint) (*domain.Document, error) {
	return s.docRepo.FindByID(ctx, id)
}

// List returns all documents for an establishment
func (s *DocumentService) List(ctx context.Context, establishmentID uint) ([]domain.Document, error) {
	return s.docRepo.FindByEstablishment(ctx, establishmentID)
}

// Delete removes a document row and its stored file
func (s *DocumentService) Delete(ctx context.Context, id uint) error {
	doc, err := s.docRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.docRepo.Delete(ctx, id); err != nil {
		return err
	}
	if doc.FilePath != "" {
		if err := s.store.Remove(doc.FilePath); err != nil {
			return fmt.Errorf("failed to remove stored file: %w", err)
		}
	}
	return nil
}

// Verify sets the review status of a document (admin operation)
func (s *DocumentService) Verify(ctx context.Context, id uint, status string) (*domain.Document, error) {
	if status != domain.StatusPending && status != domain.StatusVerified && status != domain.StatusRejected {
		return nil, fmt.Errorf("unknown document status %q", status)
	}
	if err := s.docRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}
	return s.docRepo.FindByID(ctx, id)
}

// Stats aggregates document counts per status
func (s *DocumentService) Stats(ctx context.Context, establishmentID uint) (*DocumentStats, error) {
	docs, err := s.docRepo.FindByEstablishment(ctx, establishmentID)
	if err != nil {
		return nil, err
	}
	stats := &DocumentStats{Total: len(docs)}
	for _, doc := range docs {
		switch doc.Status {
		case domain.StatusPending:
			stats.Pending++
		case domain.StatusVerified:
			stats.Verified++
		case domain.StatusRejected:
			stats.Rejected++
		}
	}
	return stats, nil
}

// Submit flips the establishment to pending review once every required
// document has been uploaded.
func (s *DocumentService) Submit(ctx context.Context, establishmentID uint) error {
	est, err := s.estRepo.FindByID(ctx, establishmentID)
	if err != nil {
		return err
	}

	required, err := s.docRepo.FindRequiredByEstablishment(ctx, establishmentID)
	if err != nil {
		return fmt.Errorf("failed to list required documents: %w", err)
	}

	missing := 0
	for _, doc := range required {
		if !doc.Uploaded {
			missing++
		}
	}
	if missing > 0 {
		return fmt.Errorf("%d required documents missing", missing)
	}

	est.Status = domain.StatusPending
	return s.estRepo.Update(ctx, est)
}
