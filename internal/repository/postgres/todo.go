package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/akorchagin/taskvault/internal/model"
)

var _ model.TodoStore = (*TodoRepository)(nil)

type TodoRepository struct {
	db *Connection
}

func NewTodoRepository(db *Connection) *TodoRepository {
	return &TodoRepository{db: db}
}

const todoColumns = `id, user_id, title, description, status, priority, start_date, end_date,
			  is_completed, completed_at, created_at, updated_at`

func scanTodo(row pgx.Row) (model.Todo, error) {
	var t model.Todo
	err := row.Scan(
		&t.ID, &t.UserID, &t.Title, &t.Description, &t.Status, &t.Priority,
		&t.StartDate, &t.EndDate, &t.IsCompleted, &t.CompletedAt, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *TodoRepository) Create(ctx context.Context, todo model.Todo) (model.Todo, error) {
	query := `INSERT INTO todos (id, user_id, title, description, status, priority, start_date, end_date, is_completed, completed_at)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			  RETURNING ` + todoColumns

	saved, err := scanTodo(r.db.QueryRow(ctx, query,
		todo.ID, todo.UserID, todo.Title, todo.Description, todo.Status, todo.Priority,
		todo.StartDate, todo.EndDate, todo.IsCompleted, todo.CompletedAt,
	))
	if err != nil {
		return model.Todo{}, fmt.Errorf("failed to create todo: %w", err)
	}

	return saved, nil
}

func (r *TodoRepository) GetByID(ctx context.Context, userID, id uuid.UUID) (model.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE id = $1 AND user_id = $2`

	todo, err := scanTodo(r.db.QueryRow(ctx, query, id, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Todo{}, model.ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to get todo by id: %w", err)
	}

	return todo, nil
}

func (r *TodoRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]model.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get todos by user id: %w", err)
	}
	defer rows.Close()

	return collectTodos(rows)
}

func (r *TodoRepository) GetOverdue(ctx context.Context, userID uuid.UUID, now time.Time) ([]model.Todo, error) {
	query := `SELECT ` + todoColumns + ` FROM todos
			  WHERE user_id = $1 AND end_date < $2 AND NOT is_completed
			  ORDER BY end_date`

	rows, err := r.db.Query(ctx, query, userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to get overdue todos: %w", err)
	}
	defer rows.Close()

	return collectTodos(rows)
}

func (r *TodoRepository) Update(ctx context.Context, todo model.Todo) (model.Todo, error) {
	query := `UPDATE todos SET title = $3, description = $4, status = $5, priority = $6,
			  start_date = $7, end_date = $8, is_completed = $9, completed_at = $10, updated_at = NOW()
			  WHERE id = $1 AND user_id = $2
			  RETURNING ` + todoColumns

	saved, err := scanTodo(r.db.QueryRow(ctx, query,
		todo.ID, todo.UserID, todo.Title, todo.Description, todo.Status, todo.Priority,
		todo.StartDate, todo.EndDate, todo.IsCompleted, todo.CompletedAt,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Todo{}, model.ErrNotFound
		}
		return model.Todo{}, fmt.Errorf("failed to update todo: %w", err)
	}

	return saved, nil
}

func (r *TodoRepository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	query := `DELETE FROM todos WHERE id = $1 AND user_id = $2`

	tag, err := r.db.Exec(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete todo: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return model.ErrNotFound
	}
	return nil
}

func collectTodos(rows pgx.Rows) ([]model.Todo, error) {
	todos := make([]model.Todo, 0)
	for rows.Next() {
		todo, err := scanTodo(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan todo: %w", err)
		}
		todos = append(todos, todo)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate todos: %w", err)
	}
	return todos, nil
}
