package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redmonkez12/user-auth-api/internal/logging"
	"github.com/redmonkez12/user-auth-api/internal/password"
	"github.com/redmonkez12/user-auth-api/internal/user"
)

// Service handles authentication business logic
type Service struct {
	store     user.Store
	tokens    TokenService
	logger    *logging.Logger
	signupTTL time.Duration
	loginTTL  time.Duration
}

func NewService(store user.Store, tokens TokenService, logger *logging.Logger, signupTTL, loginTTL time.Duration) *Service {
	return &Service{
		store:     store,
		tokens:    tokens,
		logger:    logger,
		signupTTL: signupTTL,
		loginTTL:  loginTTL,
	}
}

// Signup registers a new account and returns a short-lived token for it.
//
// Errors: *user.ValidationError for bad input, ErrUserExists when the email
// is taken (including a lost race against a concurrent signup),
// *SigningError when minting fails, anything else is a persistence failure.
func (s *Service) Signup(ctx context.Context, username, email, plaintext string) (string, *user.User, error) {
	if err := user.ValidateSignup(username, email, plaintext); err != nil {
		return "", nil, err
	}

	exists, err := s.store.Exists(ctx, email)
	if err != nil {
		return "", nil, fmt.Errorf("check existing user: %w", err)
	}
	if exists {
		return "", nil, ErrUserExists
	}

	hash, err := password.Hash(plaintext)
	if err != nil {
		return "", nil, err
	}

	created, err := s.store.Create(ctx, username, email, hash)
	if err != nil {
		if errors.Is(err, user.ErrDuplicateEmail) {
			return "", nil, ErrUserExists
		}
		return "", nil, fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(created.ID, s.signupTTL)
	if err != nil {
		return "", nil, err
	}

	s.logger.Info("user signed up", "user_id", created.ID)
	return token, created, nil
}

// Login checks credentials and returns a login token.
//
// Both an unknown email and a wrong password yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, email, plaintext string) (string, error) {
	if email == "" || plaintext == "" {
		return "", ErrMissingCredentials
	}

	u, err := s.store.FindByEmail(ctx, email, user.WithPassword())
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("find user: %w", err)
	}

	if !u.HasPassword() {
		return "", fmt.Errorf("user %s loaded without password hash", u.ID)
	}

	if !s.store.VerifyPassword(u, plaintext) {
		return "", ErrInvalidCredentials
	}

	return s.tokens.Issue(u.ID, s.loginTTL)
}

// Me returns the profile of the authenticated user.
func (s *Service) Me(ctx context.Context, userID string) (*user.User, error) {
	return s.store.FindByID(ctx, userID)
}
