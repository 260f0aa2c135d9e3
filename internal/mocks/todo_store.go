package mocks

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/akorchagin/taskvault/internal/model"
)

// TodoStore is a mock implementation of model.TodoStore.
type TodoStore struct {
	mock.Mock
}

// NewTodoStore creates a TodoStore mock with expectations asserted on
// test cleanup.
func NewTodoStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *TodoStore {
	m := &TodoStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TodoStore) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	args := m.Called(ctx, todo)
	return args.Get(0).(model.Todo), args.Error(1)
}

func (m *TodoStore) GetByID(ctx context.Context, userID, id uuid.UUID) (model.Todo, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(model.Todo), args.Error(1)
}

func (m *TodoStore) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.Todo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Todo), args.Error(1)
}

func (m *TodoStore) GetOverdue(ctx context.Context, userID uuid.UUID, now time.Time) ([]model.Todo, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Todo), args.Error(1)
}

func (m *TodoStore) Update(ctx context.Context, todo model.Todo) (model.Todo, error) {
	args := m.Called(ctx, todo)
	return args.Get(0).(model.Todo), args.Error(1)
}

func (m *TodoStore) Delete(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
