// Package auth resolves bearer credentials into user identities.
// Token issuance belongs to the external identity provider; this side only
// verifies.
package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken is returned when a credential cannot be verified.
var ErrInvalidToken = errors.New("invalid token")

// Identity is a verified caller. UserID is the opaque identifier every
// stored entity is namespaced under.
type Identity struct {
	UserID string
}

// Verifier validates a bearer credential and yields a stable user identity.
type Verifier interface {
	Verify(token string) (*Identity, error)
}

// JWTVerifier verifies HMAC-signed JWTs whose subject claim carries the user
// id. It implements the Verifier interface.
type JWTVerifier struct {
	secret []byte
}

// NewJWTVerifier creates a JWTVerifier with the given shared secret.
func NewJWTVerifier(secret string) *JWTVerifier {
	return &JWTVerifier{secret: []byte(secret)}
}

// Verify parses and validates the token, returning the caller's identity.
// Expiry is checked by the parser.
func (v *JWTVerifier) Verify(tokenString string) (*Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return &Identity{UserID: claims.Subject}, nil
}

type contextKey string

const identityKey contextKey = "identity"

// WithIdentity returns a copy of ctx carrying the verified identity.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromContext returns the verified identity, or nil if the request
// was not authenticated.
func IdentityFromContext(ctx context.Context) *Identity {
	if v := ctx.Value(identityKey); v != nil {
		if id, ok := v.(*Identity); ok {
			return id
		}
	}
	return nil
}
