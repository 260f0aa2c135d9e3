package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/akorchagin/taskvault/internal/model"
)

// TodoService is a mock implementation of handler.TodoService.
type TodoService struct {
	mock.Mock
}

// NewTodoService creates a TodoService mock with expectations asserted
// on test cleanup.
func NewTodoService(t interface {
	mock.TestingT
	Cleanup(func())
}) *TodoService {
	m := &TodoService{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *TodoService) CreateTodo(ctx context.Context, params model.CreateTodoParams) (model.Todo, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Todo), args.Error(1)
}

func (m *TodoService) GetTodo(ctx context.Context, userID, id uuid.UUID) (model.Todo, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(model.Todo), args.Error(1)
}

func (m *TodoService) GetTodos(ctx context.Context, userID uuid.UUID) ([]model.Todo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Todo), args.Error(1)
}

func (m *TodoService) GetOverdueTodos(ctx context.Context, userID uuid.UUID) ([]model.Todo, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Todo), args.Error(1)
}

func (m *TodoService) UpdateTodo(ctx context.Context, params model.UpdateTodoParams) (model.Todo, error) {
	args := m.Called(ctx, params)
	return args.Get(0).(model.Todo), args.Error(1)
}

func (m *TodoService) ToggleComplete(ctx context.Context, userID, id uuid.UUID) (model.Todo, error) {
	args := m.Called(ctx, userID, id)
	return args.Get(0).(model.Todo), args.Error(1)
}

func (m *TodoService) DeleteTodo(ctx context.Context, userID, id uuid.UUID) error {
	args := m.Called(ctx, userID, id)
	return args.Error(0)
}
