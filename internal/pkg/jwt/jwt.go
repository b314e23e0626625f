// Package jwt issues and validates the HS256 tokens the fixture backend
// hands out at login.
package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/oklog/ulid/v2"
)

// Claims carried by a session token.
type Claims struct {
	Email       string `json:"email"`
	IsStaff     bool   `json:"is_staff"`
	IsSuperuser bool   `json:"is_superuser"`
	EmpresaID   string `json:"empresa_id,omitempty"`
	jwt.RegisteredClaims
}

type Config struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
}

func NewManager(cfg Config) *Manager {
	ttl := cfg.TTL
	if ttl == 0 {
		ttl = 24 * time.Hour
	}
	return &Manager{secret: []byte(cfg.Secret), issuer: cfg.Issuer, ttl: ttl}
}

// Generate mints a token for the given account.
func (m *Manager) Generate(userID, email string, isStaff, isSuperuser bool, empresaID string) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email:       email,
		IsStaff:     isStaff,
		IsSuperuser: isSuperuser,
		EmpresaID:   empresaID,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ID:        ulid.Make().String(),
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(m.secret)
}

// Verify validates a token and returns its claims.
func (m *Manager) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims")
	}
	if m.issuer != "" && claims.Issuer != m.issuer {
		return nil, fmt.Errorf("invalid issuer: expected %s, got %s", m.issuer, claims.Issuer)
	}
	return claims, nil
}
