package user

import (
	"context"
	"errors"
)

var (
	ErrNotFound       = errors.New("user not found")
	ErrDuplicateEmail = errors.New("email already exists")
)

// Store persists user accounts.
type Store interface {
	// FindByEmail looks a user up by exact email. The password hash is left
	// out unless WithPassword is passed.
	FindByEmail(ctx context.Context, email string, opts ...FindOption) (*User, error)
	FindByID(ctx context.Context, id string) (*User, error)
	Exists(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, username, email, passwordHash string) (*User, error)
	VerifyPassword(u *User, candidate string) bool
	EnsureIndexes(ctx context.Context) error
}

type findOptions struct {
	withPassword bool
}

// FindOption tunes a lookup.
type FindOption func(*findOptions)

// WithPassword selects the password hash along with the profile fields.
func WithPassword() FindOption {
	return func(o *findOptions) {
		o.withPassword = true
	}
}

func applyFindOptions(opts []FindOption) findOptions {
	var o findOptions
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// passwordVerifier is embedded by every Store implementation.
type passwordVerifier struct{}

func (passwordVerifier) VerifyPassword(u *User, candidate string) bool {
	return u.MatchPassword(candidate)
}
