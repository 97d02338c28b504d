package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret, subject string, expiresAt time.Time) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	})
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("failed to sign token: %v", err)
	}
	return signed
}

func TestJWTVerifier_Verify(t *testing.T) {
	verifier := NewJWTVerifier(testSecret)
	future := time.Now().Add(time.Hour)

	tests := []struct {
		name       string
		token      string
		wantUserID string
		wantErr    bool
	}{
		{
			name:       "valid token",
			token:      signToken(t, testSecret, "user-42", future),
			wantUserID: "user-42",
		},
		{
			name:    "wrong secret",
			token:   signToken(t, "other-secret", "user-42", future),
			wantErr: true,
		},
		{
			name:    "expired token",
			token:   signToken(t, testSecret, "user-42", time.Now().Add(-time.Hour)),
			wantErr: true,
		},
		{
			name:    "missing subject",
			token:   signToken(t, testSecret, "", future),
			wantErr: true,
		},
		{
			name:    "garbage token",
			token:   "not.a.jwt",
			wantErr: true,
		},
		{
			name:    "empty token",
			token:   "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			identity, err := verifier.Verify(tt.token)
			if tt.wantErr {
				if err == nil {
					t.Fatal("Verify() error = nil, want error")
				}
				if !errors.Is(err, ErrInvalidToken) {
					t.Errorf("Verify() error = %v, want ErrInvalidToken", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Verify() error = %v", err)
			}
			if identity.UserID != tt.wantUserID {
				t.Errorf("Verify() user = %q, want %q", identity.UserID, tt.wantUserID)
			}
		})
	}
}

func TestJWTVerifier_RejectsUnsignedAlgorithm(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{
		Subject:   "user-42",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("failed to build unsigned token: %v", err)
	}

	if _, err := NewJWTVerifier(testSecret).Verify(unsigned); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Verify() error = %v, want ErrInvalidToken for alg none", err)
	}
}

func TestIdentityContext(t *testing.T) {
	ctx := context.Background()

	if got := IdentityFromContext(ctx); got != nil {
		t.Errorf("IdentityFromContext() on empty context = %v, want nil", got)
	}

	id := &Identity{UserID: "user-42"}
	ctx = WithIdentity(ctx, id)
	if got := IdentityFromContext(ctx); got == nil || got.UserID != "user-42" {
		t.Errorf("IdentityFromContext() = %v, want %v", got, id)
	}
}
