package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("expired token")
)

// Claims is the JWT payload carried by healthpoints access tokens.
// Level >= 10 marks an administrator.
type Claims struct {
	jwt.RegisteredClaims
	Login string `json:"login"`
	Level int    `json:"level"`
}

// Manager signs and verifies HMAC access tokens. Token issuance normally
// lives in the identity service; Generate exists for tooling and tests.
type Manager struct {
	secretKey []byte
	expiresIn time.Duration
}

// NewManager creates a token manager. expiresInMinutes applies to
// tokens produced by Generate.
func NewManager(secret string, expiresInMinutes int) *Manager {
	return &Manager{
		secretKey: []byte(secret),
		expiresIn: time.Duration(expiresInMinutes) * time.Minute,
	}
}

// Generate creates a signed access token for the given login/level
func (m *Manager) Generate(login string, level int) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   login,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.expiresIn)),
		},
		Login: login,
		Level: level,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secretKey)
}

// VerifyToken validates a bearer token and returns its claims
func (m *Manager) VerifyToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Validate signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secretKey, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, ErrInvalidToken
}
