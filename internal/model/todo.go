package model

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// TodoStatus is the workflow state of a todo.
type TodoStatus string

// TodoPriority ranks a todo's urgency.
type TodoPriority string

const (
	TodoStatusPending  TodoStatus = "pending"
	TodoStatusFinished TodoStatus = "finished"

	TodoPriorityLow    TodoPriority = "low"
	TodoPriorityMedium TodoPriority = "medium"
	TodoPriorityHigh   TodoPriority = "high"
)

// TodoStore defines persistence operations for todos. Every query is
// scoped to the owning user.
type TodoStore interface {
	Create(ctx context.Context, todo Todo) (Todo, error)
	GetByID(ctx context.Context, userID, id uuid.UUID) (Todo, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]Todo, error)
	GetOverdue(ctx context.Context, userID uuid.UUID, now time.Time) ([]Todo, error)
	Update(ctx context.Context, todo Todo) (Todo, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Todo represents a single task owned by a user.
type Todo struct {
	ID          uuid.UUID
	UserID      uuid.UUID
	Title       string
	Description string
	Status      TodoStatus
	Priority    TodoPriority
	StartDate   time.Time
	EndDate     time.Time
	IsCompleted bool
	CompletedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateTodoParams carries validated input for a new todo.
type CreateTodoParams struct {
	UserID      uuid.UUID
	Title       string
	Description string
	Status      TodoStatus
	Priority    TodoPriority
	StartDate   time.Time
	EndDate     time.Time
	IsCompleted bool
}

// UpdateTodoParams carries the mutable fields of a todo; nil means
// "leave unchanged".
type UpdateTodoParams struct {
	UserID      uuid.UUID
	ID          uuid.UUID
	Title       *string
	Description *string
	Status      *TodoStatus
	Priority    *TodoPriority
	StartDate   *time.Time
	EndDate     *time.Time
	IsCompleted *bool
}
