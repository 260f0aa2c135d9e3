package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Roles assignable to users. The base routes configure no role
// restrictions; the column exists for the capability gate.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// UserStore defines persistence operations for users and their
// refresh credential.
type UserStore interface {
	Create(ctx context.Context, user User) (User, error)
	GetByEmail(ctx context.Context, email string) (User, error)
	GetByID(ctx context.Context, id uuid.UUID) (User, error)
	// SetRefreshToken unconditionally overwrites the stored refresh
	// token digest, invalidating any previously issued refresh token.
	SetRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash []byte) error
	// RotateRefreshToken replaces oldHash with newHash in a single
	// conditional write. Returns ErrRefreshMismatch when the stored
	// digest does not equal oldHash, so of two concurrent rotations
	// with the same token at most one succeeds.
	RotateRefreshToken(ctx context.Context, userID uuid.UUID, oldHash, newHash []byte) error
	// ClearRefreshToken sets the stored digest to NULL. Returns
	// ErrNotFound for an unknown user.
	ClearRefreshToken(ctx context.Context, userID uuid.UUID) error
}

// User represents a stored user with authentication material.
// PasswordHash and RefreshTokenHash never leave the server.
type User struct {
	ID               uuid.UUID
	Name             string
	Email            string
	Role             string
	PasswordHash     string
	RefreshTokenHash []byte
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// SessionResult is the outcome of a successful register, login or
// refresh: a fresh token pair and the subject it was issued to.
type SessionResult struct {
	User         User
	AccessToken  string
	RefreshToken string
}
