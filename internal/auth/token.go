// Package auth issues and verifies the HS256 session tokens carried in the
// "token" cookie. The signing secret comes from config at startup — it is
// never a module-level constant.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/amehta/tripmates/internal/domain"
)

// TokenTTL is how long a session token stays valid after login.
const TokenTTL = 24 * time.Hour

// Claims are the JWT claims carried by a session token. Subject holds the
// user's UUID; Email is duplicated into a custom claim so the admin
// allow-list check does not need a database round trip.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Manager signs and verifies session tokens with a single HMAC secret.
type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewManager constructs a Manager from the configured secret.
// An empty secret is a configuration error, caught at startup.
func NewManager(secret string) (*Manager, error) {
	if secret == "" {
		return nil, errors.New("auth.NewManager: JWT secret must not be empty")
	}
	return &Manager{secret: []byte(secret), ttl: TokenTTL, now: time.Now}, nil
}

// Issue returns a signed token for the given user, valid for TokenTTL.
func (m *Manager) Issue(userID uuid.UUID, email string) (string, error) {
	now := m.now()
	claims := Claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("auth.Manager.Issue: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string, returning its claims and
// the user ID from the subject. Any parse, signature, or expiry failure
// maps to domain.ErrUnauthorized — callers never see jwt internals.
func (m *Manager) Verify(tokenString string) (Claims, uuid.UUID, error) {
	var claims Claims
	_, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(m.now))
	if err != nil {
		return Claims{}, uuid.Nil, fmt.Errorf("%w: invalid session token", domain.ErrUnauthorized)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return Claims{}, uuid.Nil, fmt.Errorf("%w: invalid session token", domain.ErrUnauthorized)
	}
	return claims, userID, nil
}
