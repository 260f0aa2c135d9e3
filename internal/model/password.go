package model

// PasswordHasher derives and verifies one-way password digests.
// Verify reports a mismatch as (false, nil), not as an error.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) (bool, error)
}
