package service

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akorchagin/taskvault/internal/logger"
	"github.com/akorchagin/taskvault/internal/model"
)

// Auth orchestrates registration, login, refresh and logout. It owns
// the single-active-refresh-token invariant: at most one refresh
// token digest is stored per user, and every successful operation
// either overwrites or clears it.
type Auth struct {
	userStore    model.UserStore
	hasher       model.PasswordHasher
	tokenManager model.TokenManager
	logger       *logger.Logger
}

func NewAuth(
	userStore model.UserStore,
	hasher model.PasswordHasher,
	tokenManager model.TokenManager,
	logger *logger.Logger,
) *Auth {
	return &Auth{
		userStore:    userStore,
		hasher:       hasher,
		tokenManager: tokenManager,
		logger:       logger,
	}
}

// Register creates a user and immediately issues a token pair, so a
// fresh registration behaves like a successful login. The password is
// hashed explicitly before the user is persisted; persistence never
// hashes as a side effect.
func (a *Auth) Register(ctx context.Context, name, email, password string) (model.SessionResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	a.logger.Debug("Auth service: starting user registration", "email", email)

	_, err := a.userStore.GetByEmail(ctx, email)
	if err == nil {
		a.logger.Info("Auth service: email already in use", "email", email)
		return model.SessionResult{}, model.ErrEmailTaken
	}
	if !errors.Is(err, model.ErrNotFound) {
		return model.SessionResult{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	digest, err := a.hasher.Hash(password)
	if err != nil {
		return model.SessionResult{}, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user, err := a.userStore.Create(ctx, model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		Role:         model.RoleUser,
		PasswordHash: digest,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		a.logger.Error("Auth service: failed to create user", "email", email, "error", err.Error())
		return model.SessionResult{}, fmt.Errorf("failed to create user: %w", err)
	}

	result, err := a.issue(ctx, user)
	if err != nil {
		return model.SessionResult{}, err
	}

	a.logger.Info("Auth service: user registered", "email", email, "user_id", user.ID)

	return result, nil
}

// Login verifies credentials and issues a fresh pair, overwriting the
// stored refresh digest and invalidating any previously issued
// refresh token. Unknown email and wrong password are deliberately
// indistinguishable to the caller.
func (a *Auth) Login(ctx context.Context, email, password string) (model.SessionResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	a.logger.Debug("Auth service: starting user login", "email", email)

	user, err := a.userStore.GetByEmail(ctx, email)
	if errors.Is(err, model.ErrNotFound) {
		return model.SessionResult{}, model.ErrInvalidCredentials
	}
	if err != nil {
		return model.SessionResult{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	ok, err := a.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		if errors.Is(err, model.ErrEmptyPassword) {
			return model.SessionResult{}, model.ErrInvalidCredentials
		}
		return model.SessionResult{}, fmt.Errorf("failed to verify password: %w", err)
	}
	if !ok {
		return model.SessionResult{}, model.ErrInvalidCredentials
	}

	result, err := a.issue(ctx, user)
	if err != nil {
		return model.SessionResult{}, err
	}

	a.logger.Info("Auth service: user logged in", "email", email, "user_id", user.ID)

	return result, nil
}

// Refresh exchanges a valid refresh token for a brand-new pair. The
// rotation is a single conditional store write, so a given refresh
// token succeeds at most once even under concurrent presentation.
func (a *Auth) Refresh(ctx context.Context, refreshToken string) (model.SessionResult, error) {
	a.logger.Debug("Auth service: starting token refresh")

	userID, err := a.tokenManager.ParseRefreshToken(refreshToken)
	if err != nil {
		return model.SessionResult{}, err
	}

	user, err := a.userStore.GetByID(ctx, userID)
	if errors.Is(err, model.ErrNotFound) {
		// Subject deleted since issuance; the token matches nothing.
		return model.SessionResult{}, model.ErrRefreshMismatch
	}
	if err != nil {
		return model.SessionResult{}, fmt.Errorf("failed to get user by id: %w", err)
	}

	newAccess, err := a.tokenManager.GenerateAccessToken(user.ID)
	if err != nil {
		return model.SessionResult{}, fmt.Errorf("failed to issue access token: %w", err)
	}
	newRefresh, err := a.tokenManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return model.SessionResult{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	err = a.userStore.RotateRefreshToken(ctx, user.ID, hashRefresh(refreshToken), hashRefresh(newRefresh))
	if errors.Is(err, model.ErrRefreshMismatch) {
		a.logger.Info("Auth service: stale refresh token presented", "user_id", user.ID)
		return model.SessionResult{}, model.ErrRefreshMismatch
	}
	if err != nil {
		return model.SessionResult{}, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	a.logger.Info("Auth service: tokens refreshed", "user_id", user.ID)

	return model.SessionResult{
		User:         user,
		AccessToken:  newAccess,
		RefreshToken: newRefresh,
	}, nil
}

// Logout clears the stored refresh digest, immediately invalidating
// any outstanding refresh token for the user.
func (a *Auth) Logout(ctx context.Context, userID uuid.UUID) error {
	a.logger.Debug("Auth service: starting logout", "user_id", userID)

	if err := a.userStore.ClearRefreshToken(ctx, userID); err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return model.ErrNotFound
		}
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}

	a.logger.Info("Auth service: user logged out", "user_id", userID)

	return nil
}

// issue generates a pair and unconditionally overwrites the stored
// refresh digest. Only the digest is persisted; the pair itself is
// stateless.
func (a *Auth) issue(ctx context.Context, user model.User) (model.SessionResult, error) {
	access, err := a.tokenManager.GenerateAccessToken(user.ID)
	if err != nil {
		return model.SessionResult{}, fmt.Errorf("failed to issue access token: %w", err)
	}

	refresh, err := a.tokenManager.GenerateRefreshToken(user.ID)
	if err != nil {
		return model.SessionResult{}, fmt.Errorf("failed to issue refresh token: %w", err)
	}

	if err := a.userStore.SetRefreshToken(ctx, user.ID, hashRefresh(refresh)); err != nil {
		return model.SessionResult{}, fmt.Errorf("failed to persist refresh token: %w", err)
	}

	return model.SessionResult{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	}, nil
}

// hashRefresh is the at-rest form of the refresh credential: raw
// token bytes, no normalization, sha256 digest.
func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}
