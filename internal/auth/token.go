package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/redmonkez12/user-auth-api/internal/config"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

// TokenClaims is what a verified session token carries.
type TokenClaims struct {
	UserID    string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// TokenService mints and verifies session tokens.
// Implementations include JWTService (HS256) and PasetoService (v4.local).
type TokenService interface {
	Issue(userID string, ttl time.Duration) (string, error)
	Verify(token string) (*TokenClaims, error)
}

// SigningError means a token could not be minted. Callers answer with a 500.
type SigningError struct {
	Err error
}

func (e *SigningError) Error() string {
	return fmt.Sprintf("sign token: %v", e.Err)
}

func (e *SigningError) Unwrap() error {
	return e.Err
}

var errEmptySubject = errors.New("user id is empty")

// NewTokenService builds the token service selected by AUTH_TOKEN_STRATEGY.
func NewTokenService(cfg config.AuthConfig) (TokenService, error) {
	switch cfg.TokenStrategy {
	case config.TokenPaseto:
		return NewPasetoService(cfg.PasetoKey)
	case config.TokenJWT, "":
		return NewJWTService(cfg.JWTSecret)
	default:
		return nil, fmt.Errorf("unsupported token strategy %q", cfg.TokenStrategy)
	}
}
