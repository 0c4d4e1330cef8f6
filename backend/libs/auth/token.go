// Package auth issues and validates the JWTs shared between auth-service and
// the gateway.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Roles carried in tokens.
const (
	RoleOwner = "owner"
	RoleStaff = "staff"
)

// ErrInvalidToken covers every parse, signature and claim failure.
var ErrInvalidToken = errors.New("auth: invalid token")

// Claims represents JWT payload used across services.
type Claims struct {
	Role   string `json:"role"`
	CafeID string `json:"cafe_id,omitempty"`
	jwt.RegisteredClaims
}

// TokenService handles JWT creation and validation.
type TokenService struct {
	secret    []byte
	expiresIn time.Duration
	now       func() time.Time
}

// NewTokenService returns configured token service.
func NewTokenService(secret string, expiresIn time.Duration) *TokenService {
	if expiresIn <= 0 {
		expiresIn = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), expiresIn: expiresIn, now: time.Now}
}

// GenerateToken issues a JWT whose subject is the owner or staff id.
func (t *TokenService) GenerateToken(subject, role, cafeID string) (string, error) {
	if subject == "" {
		return "", errors.New("auth: subject is required")
	}
	if role != RoleOwner && role != RoleStaff {
		return "", errors.New("auth: unknown role")
	}

	now := t.now().UTC()
	claims := Claims{
		Role:   role,
		CafeID: cafeID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.expiresIn)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(t.secret)
}

// ValidateToken verifies and decodes JWT.
func (t *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("auth: unexpected signing method")
		}
		return t.secret, nil
	}, jwt.WithTimeFunc(t.now))
	if err != nil {
		return nil, errors.Join(ErrInvalidToken, err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}
	if claims.Role == RoleStaff && claims.CafeID == "" {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
