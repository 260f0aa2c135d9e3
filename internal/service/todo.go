package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/akorchagin/taskvault/internal/logger"
	"github.com/akorchagin/taskvault/internal/model"
)

// Todo provides task operations scoped to their owner.
type Todo struct {
	todoStore model.TodoStore
	logger    *logger.Logger
}

func NewTodo(todoStore model.TodoStore, logger *logger.Logger) *Todo {
	return &Todo{
		todoStore: todoStore,
		logger:    logger,
	}
}

func (s *Todo) CreateTodo(ctx context.Context, params model.CreateTodoParams) (model.Todo, error) {
	if params.StartDate.After(params.EndDate) {
		return model.Todo{}, model.ErrInvalidDateRange
	}

	todo := model.Todo{
		ID:          uuid.New(),
		UserID:      params.UserID,
		Title:       params.Title,
		Description: params.Description,
		Status:      params.Status,
		Priority:    params.Priority,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		IsCompleted: params.IsCompleted,
	}
	if todo.Status == "" {
		todo.Status = model.TodoStatusPending
	}
	if todo.Priority == "" {
		todo.Priority = model.TodoPriorityMedium
	}
	if todo.IsCompleted {
		now := time.Now()
		todo.CompletedAt = &now
	}

	created, err := s.todoStore.Create(ctx, todo)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}

	s.logger.Info("Todo service: todo created", "user_id", params.UserID, "todo_id", created.ID)

	return created, nil
}

func (s *Todo) GetTodo(ctx context.Context, userID, id uuid.UUID) (model.Todo, error) {
	todo, err := s.todoStore.GetByID(ctx, userID, id)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to get todo by id: %w", err)
	}
	return todo, nil
}

func (s *Todo) GetTodos(ctx context.Context, userID uuid.UUID) ([]model.Todo, error) {
	todos, err := s.todoStore.GetByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get todos by user id: %w", err)
	}
	return todos, nil
}

func (s *Todo) GetOverdueTodos(ctx context.Context, userID uuid.UUID) ([]model.Todo, error) {
	todos, err := s.todoStore.GetOverdue(ctx, userID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to get overdue todos: %w", err)
	}
	return todos, nil
}

// UpdateTodo applies the non-nil fields of params to the stored todo.
func (s *Todo) UpdateTodo(ctx context.Context, params model.UpdateTodoParams) (model.Todo, error) {
	todo, err := s.todoStore.GetByID(ctx, params.UserID, params.ID)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to get todo by id: %w", err)
	}

	if params.Title != nil {
		todo.Title = *params.Title
	}
	if params.Description != nil {
		todo.Description = *params.Description
	}
	if params.Status != nil {
		todo.Status = *params.Status
	}
	if params.Priority != nil {
		todo.Priority = *params.Priority
	}
	if params.StartDate != nil {
		todo.StartDate = *params.StartDate
	}
	if params.EndDate != nil {
		todo.EndDate = *params.EndDate
	}
	if todo.StartDate.After(todo.EndDate) {
		return model.Todo{}, model.ErrInvalidDateRange
	}
	if params.IsCompleted != nil && *params.IsCompleted != todo.IsCompleted {
		todo.IsCompleted = *params.IsCompleted
		todo.CompletedAt = nil
		if todo.IsCompleted {
			now := time.Now()
			todo.CompletedAt = &now
		}
	}

	updated, err := s.todoStore.Update(ctx, todo)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to update todo: %w", err)
	}

	return updated, nil
}

// ToggleComplete flips the completion flag, stamping or clearing
// CompletedAt accordingly.
func (s *Todo) ToggleComplete(ctx context.Context, userID, id uuid.UUID) (model.Todo, error) {
	todo, err := s.todoStore.GetByID(ctx, userID, id)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to get todo by id: %w", err)
	}

	todo.IsCompleted = !todo.IsCompleted
	todo.CompletedAt = nil
	if todo.IsCompleted {
		now := time.Now()
		todo.CompletedAt = &now
	}

	updated, err := s.todoStore.Update(ctx, todo)
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to toggle todo: %w", err)
	}

	return updated, nil
}

func (s *Todo) DeleteTodo(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.todoStore.Delete(ctx, userID, id); err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}

	s.logger.Info("Todo service: todo deleted", "user_id", userID, "todo_id", id)

	return nil
}
