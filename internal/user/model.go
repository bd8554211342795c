package user

import (
	"time"

	"github.com/redmonkez12/user-auth-api/internal/password"
)

// User is a registered account. The password hash is held in an unexported
// field and is only populated when a lookup explicitly asks for it.
type User struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"createdAt"`

	passwordHash string
}

// MatchPassword reports whether candidate matches the stored hash. It is
// always false when the hash was not selected.
func (u *User) MatchPassword(candidate string) bool {
	if u == nil {
		return false
	}
	return password.Compare(candidate, u.passwordHash)
}

// HasPassword reports whether the hash was loaded with the record.
func (u *User) HasPassword() bool {
	return u != nil && u.passwordHash != ""
}
