package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/deadloked8999/e-bar/domain"
)

const testSecret = "test-secret-key"

func TestJWTServiceImpl_IssueAndValidate(t *testing.T) {
	svc := NewJWTService(testSecret, "ebar", time.Hour)

	token, err := svc.Issue(42)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	id, err := svc.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if id != 42 {
		t.Errorf("Validate() subject = %d, want 42", id)
	}
}

func TestJWTServiceImpl_ValidateRejections(t *testing.T) {
	svc := NewJWTService(testSecret, "ebar", time.Hour)

	valid, err := svc.Issue(7)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	expiredSvc := NewJWTService(testSecret, "ebar", -time.Hour)
	expired, err := expiredSvc.Issue(7)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	otherKey, err := NewJWTService("some-other-secret", "ebar", time.Hour).Issue(7)
	if err != nil {
		t.Fatalf("Issue() error = %v", err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{
			name:  "empty token",
			token: "",
		},
		{
			name:  "garbage token",
			token: "not.a.jwt",
		},
		{
			name:  "expired token",
			token: expired,
		},
		{
			name:  "token signed with another key",
			token: otherKey,
		},
		{
			name:  "tampered signature",
			token: tamperSignature(t, valid),
		},
		{
			name:  "missing subject claim",
			token: signClaims(t, jwt.MapClaims{"iat": time.Now().Unix(), "exp": time.Now().Add(time.Hour).Unix()}),
		},
		{
			name:  "non-numeric subject claim",
			token: signClaims(t, jwt.MapClaims{"sub": "abc", "iat": time.Now().Unix(), "exp": time.Now().Add(time.Hour).Unix()}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := svc.Validate(tt.token)
			if err != domain.ErrTokenInvalid {
				t.Errorf("Validate() error = %v, want ErrTokenInvalid", err)
			}
			if id != 0 {
				t.Errorf("Validate() subject = %d, want 0", id)
			}
		})
	}
}

func TestJWTServiceImpl_TTLSeconds(t *testing.T) {
	svc := NewJWTService(testSecret, "ebar", 168*time.Hour)
	if got := svc.TTLSeconds(); got != 604800 {
		t.Errorf("TTLSeconds() = %d, want 604800", got)
	}
}

// tamperSignature flips a character in the signature segment
func tamperSignature(t *testing.T, token string) string {
	t.Helper()
	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %s", token)
	}
	sig := []byte(parts[2])
	if sig[0] == 'A' {
		sig[0] = 'B'
	} else {
		sig[0] = 'A'
	}
	parts[2] = string(sig)
	return strings.Join(parts, ".")
}

// signClaims signs arbitrary claims with the test secret
func signClaims(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign claims: %v", err)
	}
	return token
}
