package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/uptrace/bun"

	"github.com/redmonkez12/user-auth-api/internal/database"
)

// uniqueViolation is the Postgres SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// BunStore handles user persistence in Postgres through bun.
type BunStore struct {
	passwordVerifier

	db *bun.DB
}

func NewBunStore(db *bun.DB) *BunStore {
	return &BunStore{db: db}
}

// EnsureIndexes creates the users table with its unique email constraint
func (r *BunStore) EnsureIndexes(ctx context.Context) error {
	_, err := r.db.NewCreateTable().
		Model((*database.User)(nil)).
		IfNotExists().
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("failed to create users table: %w", err)
	}
	return nil
}

// Create inserts a new user into the database
func (r *BunStore) Create(ctx context.Context, username, email, passwordHash string) (*User, error) {
	if err := validateRecord(username, email, passwordHash); err != nil {
		return nil, err
	}

	dbUser := &database.User{
		ID:        uuid.NewString(),
		Username:  username,
		Email:     email,
		Password:  passwordHash,
		CreatedAt: time.Now().UTC(),
	}

	_, err := r.db.NewInsert().
		Model(dbUser).
		Returning("*").
		Exec(ctx)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	dbUser.Password = ""
	return mapDBUserToModel(dbUser), nil
}

// FindByEmail retrieves a user by email
func (r *BunStore) FindByEmail(ctx context.Context, email string, opts ...FindOption) (*User, error) {
	o := applyFindOptions(opts)

	dbUser := new(database.User)
	q := r.db.NewSelect().
		Model(dbUser).
		Where("email = ?", email)
	if !o.withPassword {
		q = q.ExcludeColumn("password")
	}

	if err := q.Scan(ctx); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// FindByID retrieves a user by ID
func (r *BunStore) FindByID(ctx context.Context, id string) (*User, error) {
	dbUser := new(database.User)
	err := r.db.NewSelect().
		Model(dbUser).
		ExcludeColumn("password").
		Where("id = ?", id).
		Scan(ctx)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return mapDBUserToModel(dbUser), nil
}

// Exists reports whether an account with this email is already registered
func (r *BunStore) Exists(ctx context.Context, email string) (bool, error) {
	exists, err := r.db.NewSelect().
		Model((*database.User)(nil)).
		Where("email = ?", email).
		Exists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check user existence: %w", err)
	}
	return exists, nil
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == uniqueViolation
	}
	return strings.Contains(err.Error(), "duplicate key value violates unique constraint")
}

// mapDBUserToModel converts database model to domain model
func mapDBUserToModel(dbu *database.User) *User {
	return &User{
		ID:           dbu.ID,
		Username:     dbu.Username,
		Email:        dbu.Email,
		CreatedAt:    dbu.CreatedAt,
		passwordHash: dbu.Password,
	}
}
