package session

import (
	"context"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the cookie carrying the signed session token.
const CookieName = "warbler_session"

// Manager issues and resolves signed session tokens. The cookie value is
// an HS256 JWT whose subject is the server-side session id, so a tampered
// cookie fails signature verification before the store is ever consulted.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
}

// NewManager returns a Manager signing tokens with the given secret.
func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{store: store, secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured session lifetime.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a new session for the user and returns the signed token
// for the cookie.
func (m *Manager) Issue(ctx context.Context, userID uint) (string, error) {
	if len(m.secret) == 0 {
		return "", fmt.Errorf("session secret not configured")
	}

	sid := uuid.New().String()
	if err := m.store.Create(ctx, sid, userID, m.ttl); err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"sub": sid,
		"iss": "warbler",
		"exp": now.Add(m.ttl).Unix(),
		"iat": now.Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Resolve verifies the token signature and looks the session up in the
// store. A missing, tampered, or expired token resolves to Anonymous
// (ok = false), never to an error the caller must branch on.
func (m *Manager) Resolve(ctx context.Context, token string) (uint, bool) {
	sid, ok := m.parseSID(token)
	if !ok {
		return 0, false
	}
	userID, found, err := m.store.Get(ctx, sid)
	if err != nil || !found {
		return 0, false
	}
	return userID, true
}

// Destroy ends the session referenced by the token. Invalid tokens are a
// no-op; logout of a dead session is not an error.
func (m *Manager) Destroy(ctx context.Context, token string) error {
	sid, ok := m.parseSID(token)
	if !ok {
		return nil
	}
	return m.store.Destroy(ctx, sid)
}

func (m *Manager) parseSID(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !parsed.Valid {
		return "", false
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return "", false
	}
	sid, err := claims.GetSubject()
	if err != nil || sid == "" {
		return "", false
	}
	return sid, true
}
