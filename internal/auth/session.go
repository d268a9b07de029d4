package auth

import (
	"crypto/rand"
	"crypto/rsa"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionTTL is how long an issued session stays valid.
const SessionTTL = 24 * time.Hour

// SessionClaims are the verified facts attached to each request. UserID is 0
// for legacy (shared-secret) sessions, which carry no individual identity.
type SessionClaims struct {
	UserID    int64  `json:"uid"`
	Name      string `json:"name"`
	Role      string `json:"role"`
	Matricula string `json:"matricula,omitempty"`
	jwt.RegisteredClaims
}

// Sessions issues and verifies signed session tokens. The signing key lives
// in memory only; restarting the service invalidates outstanding sessions.
type Sessions struct {
	key    *rsa.PrivateKey
	issuer string
}

func NewSessions(issuer string) (*Sessions, error) {
	k, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		return nil, err
	}
	return &Sessions{key: k, issuer: issuer}, nil
}

// Issue signs a session token for the given principal.
func (s *Sessions) Issue(userID int64, name, role, matricula string) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:    userID,
		Name:      name,
		Role:      role,
		Matricula: matricula,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(SessionTTL)),
		},
	}
	tok := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return tok.SignedString(s.key)
}

var ErrInvalidSession = errors.New("invalid session")

// Verify parses and validates a session token, enforcing signature, issuer
// and expiry server-side.
func (s *Sessions) Verify(token string) (*SessionClaims, error) {
	var claims SessionClaims
	tok, err := jwt.ParseWithClaims(token, &claims, func(t *jwt.Token) (any, error) {
		return &s.key.PublicKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}), jwt.WithIssuer(s.issuer))
	if err != nil || !tok.Valid {
		return nil, ErrInvalidSession
	}
	return &claims, nil
}
