package domain

import "time"

// Establishment is the tenant identity that owns documents in the system
type Establishment struct {
	ID           uint
	Name         string
	Username     string
	PasswordHash string `gorm:"column:password"`
	Position     string
	Phone        string
	Email        string

	BusinessName  string
	BusinessType  string
	BusinessPhone string
	Website       string
	LogoPath      string
	Address       string
	INN           string
	OGRN          string

	Role      string
	Status    string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Document is a file submitted by an establishment for verification
type Document struct {
	ID              uint
	EstablishmentID uint
	Group           string
	Type            string
	Name            string
	FilePath        string
	FileName        string
	Required        bool
	Uploaded        bool
	Status          string
	UploadedAt      time.Time
	CreatedAt       time.Time
}

// ResetToken is a single-use, time-bounded password reset secret.
// Used flips false->true exactly once; rows are kept for audit.
type ResetToken struct {
	ID              uint
	Token           string
	EstablishmentID uint
	CreatedAt       time.Time
	ExpiresAt       time.Time
	Used            bool
}

// AuthRequest represents login credentials. Identifier matches
// either the username or the email.
type AuthRequest struct {
	Identifier string
	Password   string
}

// AuthResult represents a successful authentication outcome
type AuthResult struct {
	Establishment *Establishment
	AccessToken   string
	ExpiresIn     int64
}

// Document statuses
const (
	StatusPending  = "pending"
	StatusVerified = "verified"
	StatusRejected = "rejected"
)
