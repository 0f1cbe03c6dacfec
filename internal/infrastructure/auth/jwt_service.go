package auth

import (
	"log"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/deadloked8999/e-bar/domain"
)

// JWTServiceImpl implements domain.TokenService. Tokens are stateless:
// there is no per-token revocation, rotating the secret invalidates all
// outstanding tokens at once.
type JWTServiceImpl struct {
	secretKey []byte
	issuer    string
	tokenTTL  time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(secretKey string, issuer string, ttl time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		secretKey: []byte(secretKey),
		issuer:    issuer,
		tokenTTL:  ttl,
	}
}

// Issue implements domain.TokenService
func (j *JWTServiceImpl) Issue(establishmentID uint) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(uint64(establishmentID), 10),
		"iss": j.issuer,
		"iat": now.Unix(),
		"exp": now.Add(j.tokenTTL).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(j.secretKey)
}

// Validate implements domain.TokenService. Every failure collapses to
// ErrTokenInvalid so callers cannot distinguish an expired token from a
// forged one; the granular reason only reaches the log.
func (j *JWTServiceImpl) Validate(tokenString string) (uint, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenInvalid
		}
		return j.secretKey, nil
	})
	if err != nil {
		log.Printf("TOKEN_REJECTED: reason=%v", err)
		return 0, domain.ErrTokenInvalid
	}
	if !token.Valid {
		return 0, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return 0, domain.ErrTokenInvalid
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		log.Printf("TOKEN_REJECTED: reason=missing subject")
		return 0, domain.ErrTokenInvalid
	}

	id, err := strconv.ParseUint(sub, 10, 32)
	if err != nil {
		log.Printf("TOKEN_REJECTED: reason=non-numeric subject")
		return 0, domain.ErrTokenInvalid
	}

	exp, ok := claims["exp"].(float64)
	if !ok || time.Unix(int64(exp), 0).Before(time.Now()) {
		return 0, domain.ErrTokenInvalid
	}

	return uint(id), nil
}

// TTLSeconds implements domain.TokenService
func (j *JWTServiceImpl) TTLSeconds() int64 {
	return int64(j.tokenTTL.Seconds())
}
