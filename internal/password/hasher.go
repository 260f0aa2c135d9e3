// Package password provides one-way password hashing and verification
// backed by bcrypt. Digests are self-contained: algorithm parameters
// and salt are encoded alongside the hash.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/akorchagin/taskvault/internal/model"
)

// Hasher hashes and verifies passwords with a fixed bcrypt cost.
type Hasher struct {
	cost int
}

// NewHasher creates a Hasher. A cost outside bcrypt's valid range
// falls back to the default cost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash derives a salted digest from plaintext. Empty plaintext is
// rejected before any work is done.
func (h *Hasher) Hash(plaintext string) (string, error) {
	if plaintext == "" {
		return "", model.ErrEmptyPassword
	}

	digest, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	return string(digest), nil
}

// Verify reports whether plaintext matches digest. A mismatch is not
// an error; the comparison does not short-circuit on the first
// differing byte. Errors are returned only for empty input or an
// undecodable digest.
func (h *Hasher) Verify(plaintext, digest string) (bool, error) {
	if plaintext == "" || digest == "" {
		return false, model.ErrEmptyPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(digest), []byte(plaintext))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, fmt.Errorf("failed to compare password: %w", err)
	}

	return true, nil
}
