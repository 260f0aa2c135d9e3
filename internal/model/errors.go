package model

import "errors"

// Sentinel errors shared across layers. Handlers translate them to
// HTTP statuses in one place; services and repositories return them
// wrapped with context.
var (
	ErrNotFound = errors.New("not found")

	// Registration / login.
	ErrEmailTaken         = errors.New("email already in use")
	ErrInvalidCredentials = errors.New("incorrect email or password")
	ErrEmptyPassword      = errors.New("password must not be empty")

	// Token verification.
	ErrTokenExpired      = errors.New("token expired")
	ErrTokenMalformed    = errors.New("token malformed")
	ErrTokenKindMismatch = errors.New("token kind mismatch")

	// Refresh rotation: the presented token verifies but is not the
	// one currently stored for its subject (already rotated, or the
	// user logged out).
	ErrRefreshMismatch = errors.New("refresh token mismatch")

	// Todo date window: start must not be after end, checked on every
	// write, not only on create.
	ErrInvalidDateRange = errors.New("start date must be before end date")

	// Request authentication.
	ErrMissingToken = errors.New("authorization token missing")
	ErrUserGone     = errors.New("user no longer exists")
	ErrForbidden    = errors.New("insufficient permissions")
)
