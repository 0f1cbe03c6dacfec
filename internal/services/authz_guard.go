package services

import (
	"github.com/deadloked8999/e-bar/domain"
)

// AuthzGuardImpl implements domain.AuthorizationGuard. The caller reads
// the owner id off the targeted resource and passes it in explicitly;
// the guard never inspects request context.
type AuthzGuardImpl struct {
	tokenSvc domain.TokenService
}

// NewAuthzGuard creates a new authorization guard
func NewAuthzGuard(tokenSvc domain.TokenService) domain.AuthorizationGuard {
	return &AuthzGuardImpl{tokenSvc: tokenSvc}
}

// Authenticate implements domain.AuthorizationGuard
func (g *AuthzGuardImpl) Authenticate(token string) (uint, error) {
	id, err := g.tokenSvc.Validate(token)
	if err != nil {
		return 0, domain.ErrUnauthenticated
	}
	return id, nil
}

// Authorize implements domain.AuthorizationGuard. A valid token whose
// subject is not the resource owner yields ErrForbidden.
func (g *AuthzGuardImpl) Authorize(token string, resourceOwnerID uint) (uint, error) {
	id, err := g.Authenticate(token)
	if err != nil {
		return 0, err
	}
	if id != resourceOwnerID {
		return 0, domain.ErrForbidden
	}
	return id, nil
}
