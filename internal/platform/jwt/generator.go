package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// EnvKeyJWTSecret is the environment variable holding the HMAC signing secret.
const EnvKeyJWTSecret = "JWT_SECRET"

// Generator defines the interface for signed session token generation.
type Generator interface {
	// GenerateToken creates a signed token wrapping the given session ID.
	GenerateToken(sessionID string, userID uint) (string, error)
}

// generator implements the Generator interface.
type generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a new token generator with the provided secret and expiration duration.
func NewGenerator(secret string, expiration time.Duration) Generator {
	return &generator{
		secret:     []byte(secret),
		expiration: expiration,
	}
}

// GenerateToken creates a signed JWT carrying the session ID in the "sid" claim.
// The token is a tamper-evident wrapper only; the server-side session row stays
// authoritative, so logout invalidates the token before "exp" is reached.
func (g *generator) GenerateToken(sessionID string, userID uint) (string, error) {
	claims := jwt.MapClaims{
		"sid": sessionID,
		"sub": userID,
		"exp": time.Now().Add(g.expiration).Unix(),
		"iat": time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
