// Package session issues and verifies the signed tokens identifying a planning session.
package session

import (
	"errors"
	"fmt"
	"time"

	"bitbucket.org/crgw/travel-planner/internal/config"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

const issuer = "travel-planner"

var ErrInvalidToken = errors.New("invalid session token")

type Session struct {
	ID        string
	ExpiresAt time.Time
	Token     string
}

type claims struct {
	jwt.RegisteredClaims
}

type Manager struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(cfg config.Session) *Manager {
	return &Manager{
		secret: []byte(cfg.Secret),
		ttl:    cfg.TTL,
		now:    time.Now,
	}
}

// Issue starts a new session with a fresh id.
func (m *Manager) Issue() (Session, error) {
	now := m.now()
	session := Session{
		ID:        uuid.NewString(),
		ExpiresAt: now.Add(m.ttl).UTC().Truncate(time.Second),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   session.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	})

	signed, err := token.SignedString(m.secret)
	if err != nil {
		return Session{}, fmt.Errorf("failed to sign session token: %w", err)
	}
	session.Token = signed

	return session, nil
}

// Parse verifies the token signature and expiry and returns its session.
func (m *Manager) Parse(token string) (Session, error) {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))

	parsed, err := parser.ParseWithClaims(token, &claims{}, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return Session{}, fmt.Errorf("%w: %s", ErrInvalidToken, err)
	}

	parsedClaims, ok := parsed.Claims.(*claims)
	if !ok || !parsed.Valid || parsedClaims.Subject == "" || parsedClaims.Issuer != issuer {
		return Session{}, ErrInvalidToken
	}

	session := Session{
		ID:    parsedClaims.Subject,
		Token: token,
	}
	if parsedClaims.ExpiresAt != nil {
		session.ExpiresAt = parsedClaims.ExpiresAt.Time
	}

	return session, nil
}
