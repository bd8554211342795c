// Package password hashes and compares user passwords with bcrypt.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Cost is the bcrypt work factor used for every new hash.
const Cost = 10

// MaxBytes is the longest input bcrypt accepts.
const MaxBytes = 72

// Hash returns a salted bcrypt hash of plaintext. The encoded hash carries
// its own salt and cost, so Compare needs nothing else.
func Hash(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), Cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// Compare reports whether plaintext matches hash. Any failure, including a
// malformed hash, is reported as a mismatch.
func Compare(plaintext, hash string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
