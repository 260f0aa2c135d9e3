package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/akorchagin/taskvault/internal/model"
)

// AuthService is a mock implementation of handler.AuthService.
type AuthService struct {
	mock.Mock
}

// NewAuthService creates an AuthService mock with expectations asserted
// on test cleanup.
func NewAuthService(t interface {
	mock.TestingT
	Cleanup(func())
}) *AuthService {
	m := &AuthService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *AuthService) Register(ctx context.Context, name, email, password string) (model.SessionResult, error) {
	args := m.Called(ctx, name, email, password)
	return args.Get(0).(model.SessionResult), args.Error(1)
}

func (m *AuthService) Login(ctx context.Context, email, password string) (model.SessionResult, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(model.SessionResult), args.Error(1)
}

func (m *AuthService) Refresh(ctx context.Context, refreshToken string) (model.SessionResult, error) {
	args := m.Called(ctx, refreshToken)
	return args.Get(0).(model.SessionResult), args.Error(1)
}

func (m *AuthService) Logout(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
