// Package jwtmw issues and verifies access tokens and provides the gin middleware that guards routes.
package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Generator signs access tokens with HS256.
type Generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a Generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) *Generator {
	return &Generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed token carrying the user id, email and role.
func (g *Generator) GenerateToken(userID uint, email, role string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"exp":   now.Add(g.expiration).Unix(),
		"iat":   now.Unix(),
		"email": email,
		"role":  role,
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Expiration returns the lifetime of issued tokens.
func (g *Generator) Expiration() time.Duration {
	return g.expiration
}
