// Package mocks contains testify mocks for the store and token
// interfaces defined in internal/model.
package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/akorchagin/taskvault/internal/model"
)

// UserStore is a mock implementation of model.UserStore.
type UserStore struct {
	mock.Mock
}

// NewUserStore creates a UserStore mock with expectations asserted on
// test cleanup.
func NewUserStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *UserStore {
	m := &UserStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *UserStore) Create(ctx context.Context, user model.User) (model.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) GetByID(ctx context.Context, id uuid.UUID) (model.User, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(model.User), args.Error(1)
}

func (m *UserStore) SetRefreshToken(ctx context.Context, userID uuid.UUID, tokenHash []byte) error {
	args := m.Called(ctx, userID, tokenHash)
	return args.Error(0)
}

func (m *UserStore) RotateRefreshToken(ctx context.Context, userID uuid.UUID, oldHash, newHash []byte) error {
	args := m.Called(ctx, userID, oldHash, newHash)
	return args.Error(0)
}

func (m *UserStore) ClearRefreshToken(ctx context.Context, userID uuid.UUID) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}
