package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/deadloked8999/e-bar/domain"
)

// EstablishmentIDKey is the context key under which the authenticated
// establishment id is stored.
const EstablishmentIDKey = "establishment_id"

// AuthMW wraps the authorization guard for route protection
type AuthMW struct {
	guard domain.AuthorizationGuard
}

// NewAuthMW creates new auth middleware wrapper
func NewAuthMW(guard domain.AuthorizationGuard) *AuthMW {
	return &AuthMW{guard: guard}
}

// BearerToken extracts the bearer token from the Authorization header.
// Returns an empty string when the header is missing or malformed.
func BearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

// RequireAuth returns middleware that rejects requests without a valid
// bearer token. A missing header, a bad signature and an expired token
// all produce the same 401 response.
func (mw *AuthMW) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := BearerToken(c)
		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			c.Abort()
			return
		}

		id, err := mw.guard.Authenticate(token)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		c.Set(EstablishmentIDKey, id)
		c.Next()
	}
}

// AuthedEstablishmentID reads the authenticated establishment id set by
// RequireAuth.
func AuthedEstablishmentID(c *gin.Context) (uint, bool) {
	v, ok := c.Get(EstablishmentIDKey)
	if !ok {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}
