package middleware

import (
	"fmt"
	"net/http"

	"github.com/casbin/casbin/v2"
	"github.com/gin-gonic/gin"

	"github.com/deadloked8999/e-bar/domain"
)

// CasbinMW enforces role-based policies on admin routes. Ownership for
// regular establishments is handled by the authorization guard; casbin
// only gates the operations reserved for reviewers.
type CasbinMW struct {
	enforcer *casbin.Enforcer
	estRepo  domain.EstablishmentRepository
}

// NewCasbinMW creates new casbin middleware wrapper
func NewCasbinMW(enforcer *casbin.Enforcer, estRepo domain.EstablishmentRepository) *CasbinMW {
	return &CasbinMW{enforcer: enforcer, estRepo: estRepo}
}

// Enforce returns the casbin authorization middleware. It must run
// after RequireAuth, which resolves the establishment id.
func (mw *CasbinMW) Enforce() gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := AuthedEstablishmentID(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Establishment not resolved from token"})
			c.Abort()
			return
		}

		est, err := mw.estRepo.FindByID(c.Request.Context(), id)
		if err != nil {
			if err == domain.ErrEstablishmentNotFound {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Unknown establishment"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			}
			c.Abort()
			return
		}

		casbinRole := fmt.Sprintf("role_%s", est.Role)
		allowed, err := mw.enforcer.Enforce(casbinRole, c.Request.URL.Path, c.Request.Method)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Authorization check failed"})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
			c.Abort()
			return
		}

		c.Next()
	}
}
