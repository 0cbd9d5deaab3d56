// Package auth issues and verifies the HS256 access tokens that identify
// API callers. Verification yields an Identity (subject id plus role); the
// rest of the system treats that as an opaque capability check.
package auth

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/skydesk/reservations/internal/domain"
)

type Identity struct {
	UserID   int64
	Username string
	Role     string
}

type Manager struct {
	secret []byte
	ttl    time.Duration
}

func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

func (m *Manager) Issue(user *domain.User) (string, time.Time, error) {
	exp := time.Now().UTC().Add(m.ttl)
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"role":     user.Role,
		"username": user.Username,
		"exp":      exp.Unix(),
		"iat":      time.Now().UTC().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// Verify parses a raw or "Bearer "-prefixed token and returns the caller's
// identity. Any parse or claim failure maps to domain.ErrUnauthorized.
func (m *Manager) Verify(raw string) (*Identity, error) {
	raw = strings.TrimPrefix(raw, "Bearer ")
	if raw == "" {
		return nil, fmt.Errorf("%w: missing token", domain.ErrUnauthorized)
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, fmt.Errorf("%w: invalid or expired token", domain.ErrUnauthorized)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, fmt.Errorf("%w: invalid claims", domain.ErrUnauthorized)
	}

	sub, ok := claims["sub"].(float64)
	if !ok {
		return nil, fmt.Errorf("%w: missing subject", domain.ErrUnauthorized)
	}
	role, _ := claims["role"].(string)
	username, _ := claims["username"].(string)

	return &Identity{UserID: int64(sub), Username: username, Role: role}, nil
}
