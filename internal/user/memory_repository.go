package user

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore keeps users in process memory. Email uniqueness is enforced
// under the same lock as the insert.
type MemoryStore struct {
	passwordVerifier

	mu      sync.RWMutex
	byID    map[string]User
	byEmail map[string]string
	now     func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    make(map[string]User),
		byEmail: make(map[string]string),
		now:     time.Now,
	}
}

func (s *MemoryStore) EnsureIndexes(ctx context.Context) error {
	return nil
}

func (s *MemoryStore) Create(ctx context.Context, username, email, passwordHash string) (*User, error) {
	if err := validateRecord(username, email, passwordHash); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byEmail[email]; ok {
		return nil, ErrDuplicateEmail
	}

	u := User{
		ID:           uuid.NewString(),
		Username:     username,
		Email:        email,
		CreatedAt:    s.now().UTC(),
		passwordHash: passwordHash,
	}
	s.byID[u.ID] = u
	s.byEmail[email] = u.ID

	return stripPassword(u), nil
}

func (s *MemoryStore) FindByEmail(ctx context.Context, email string, opts ...FindOption) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	o := applyFindOptions(opts)

	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	u := s.byID[id]
	if o.withPassword {
		return &u, nil
	}
	return stripPassword(u), nil
}

func (s *MemoryStore) FindByID(ctx context.Context, id string) (*User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	return stripPassword(u), nil
}

func (s *MemoryStore) Exists(ctx context.Context, email string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	_, ok := s.byEmail[email]
	return ok, nil
}

func stripPassword(u User) *User {
	u.passwordHash = ""
	return &u
}
