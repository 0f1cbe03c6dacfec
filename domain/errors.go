package domain

import "errors"

// Authentication errors
var (
	ErrEstablishmentNotFound = errors.New("establishment not found")
	ErrEstablishmentExists   = errors.New("establishment already exists")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrRateLimited           = errors.New("too many login attempts")
)

// Bearer token errors. ErrTokenInvalid is the only failure the token
// service reports to callers; expiry, bad signature and malformed
// subject are indistinguishable from the outside.
var (
	ErrTokenInvalid = errors.New("invalid token")
)

// Authorization errors
var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// Password reset errors
var (
	ErrResetTokenInvalid = errors.New("reset token not found")
	ErrResetTokenUsed    = errors.New("reset token already used")
	ErrResetTokenExpired = errors.New("reset token has expired")
)

// Document errors
var (
	ErrDocumentNotFound   = errors.New("document not found")
	ErrFileTypeNotAllowed = errors.New("file type not allowed")
)
