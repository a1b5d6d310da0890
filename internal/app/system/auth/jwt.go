// internal/app/system/auth/jwt.go
package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is how long an issued bearer token stays valid.
const TokenTTL = 24 * time.Hour

// TokenIssuer signs and verifies HS256 bearer tokens carrying the user ID
// as subject.
type TokenIssuer struct {
	key []byte
}

// NewTokenIssuer builds an issuer from the configured signing key.
func NewTokenIssuer(key string) (*TokenIssuer, error) {
	if strings.TrimSpace(key) == "" {
		return nil, errors.New("token key must not be empty")
	}
	return &TokenIssuer{key: []byte(key)}, nil
}

// Issue creates a signed token for the given user ID.
func (t *TokenIssuer) Issue(userID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(TokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(t.key)
}

// Verify checks the signature and expiry and returns the subject user ID.
func (t *TokenIssuer) Verify(token string) (string, error) {
	parsed, err := jwt.ParseWithClaims(token, &jwt.RegisteredClaims{}, func(tok *jwt.Token) (any, error) {
		if _, ok := tok.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return t.key, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := parsed.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", errors.New("missing subject claim")
	}
	return claims.Subject, nil
}
