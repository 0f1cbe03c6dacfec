package auth

import (
	"strings"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestPasswordServiceImpl_HashAndVerify(t *testing.T) {
	svc := NewPasswordServiceWithCost(bcrypt.MinCost)

	tests := []struct {
		name     string
		password string
		attempt  string
		want     bool
	}{
		{
			name:     "correct password verifies",
			password: "securepassword123",
			attempt:  "securepassword123",
			want:     true,
		},
		{
			name:     "wrong password fails",
			password: "securepassword123",
			attempt:  "securepassword124",
			want:     false,
		},
		{
			name:     "empty attempt fails",
			password: "securepassword123",
			attempt:  "",
			want:     false,
		},
		{
			name:     "case matters",
			password: "SecurePassword",
			attempt:  "securepassword",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := svc.Hash(tt.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if hash == tt.password {
				t.Fatal("hash equals the plaintext password")
			}
			if got := svc.Verify(hash, tt.attempt); got != tt.want {
				t.Errorf("Verify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPasswordServiceImpl_LongPasswords(t *testing.T) {
	svc := NewPasswordServiceWithCost(bcrypt.MinCost)

	prefix := strings.Repeat("a", 72)

	tests := []struct {
		name     string
		password string
		attempt  string
		want     bool
	}{
		{
			name:     "password at exactly 72 bytes round-trips",
			password: prefix,
			attempt:  prefix,
			want:     true,
		},
		{
			name:     "password over 72 bytes round-trips",
			password: prefix + "tail",
			attempt:  prefix + "tail",
			want:     true,
		},
		{
			name:     "bytes beyond 72 do not participate",
			password: prefix + "tail",
			attempt:  prefix + "different-tail",
			want:     true,
		},
		{
			name:     "difference within the first 72 bytes still fails",
			password: prefix + "tail",
			attempt:  strings.Repeat("b", 72) + "tail",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := svc.Hash(tt.password)
			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if got := svc.Verify(hash, tt.attempt); got != tt.want {
				t.Errorf("Verify() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPasswordServiceImpl_HashesAreSalted(t *testing.T) {
	svc := NewPasswordServiceWithCost(bcrypt.MinCost)

	first, err := svc.Hash("samepassword")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := svc.Hash("samepassword")
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	if first == second {
		t.Error("two hashes of the same password are identical")
	}
	if !svc.Verify(first, "samepassword") || !svc.Verify(second, "samepassword") {
		t.Error("expected both hashes to verify the password")
	}
}
