package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akorchagin/taskvault/internal/api/http/httpctx"
	"github.com/akorchagin/taskvault/internal/logger"
	"github.com/akorchagin/taskvault/internal/model"
)

// TodoService defines task operations scoped to the caller.
type TodoService interface {
	CreateTodo(ctx context.Context, params model.CreateTodoParams) (model.Todo, error)
	GetTodo(ctx context.Context, userID, id uuid.UUID) (model.Todo, error)
	GetTodos(ctx context.Context, userID uuid.UUID) ([]model.Todo, error)
	GetOverdueTodos(ctx context.Context, userID uuid.UUID) ([]model.Todo, error)
	UpdateTodo(ctx context.Context, params model.UpdateTodoParams) (model.Todo, error)
	ToggleComplete(ctx context.Context, userID, id uuid.UUID) (model.Todo, error)
	DeleteTodo(ctx context.Context, userID, id uuid.UUID) error
}

// Todo handles HTTP endpoints for task management.
type Todo struct {
	todoService TodoService
	logger      *logger.Logger
}

// NewTodo creates a new Todo handler.
func NewTodo(todoService TodoService, logger *logger.Logger) *Todo {
	return &Todo{
		todoService: todoService,
		logger:      logger,
	}
}

type createTodoRequest struct {
	Title       string    `json:"title" binding:"required,max=100"`
	Description string    `json:"description" binding:"max=500"`
	Status      string    `json:"status" binding:"omitempty,oneof=pending finished"`
	Priority    string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	StartDate   time.Time `json:"startDate" binding:"required"`
	EndDate     time.Time `json:"endDate" binding:"required"`
	IsCompleted bool      `json:"isCompleted"`
}

type updateTodoRequest struct {
	Title       *string    `json:"title" binding:"omitempty,min=1,max=100"`
	Description *string    `json:"description" binding:"omitempty,max=500"`
	Status      *string    `json:"status" binding:"omitempty,oneof=pending finished"`
	Priority    *string    `json:"priority" binding:"omitempty,oneof=low medium high"`
	StartDate   *time.Time `json:"startDate"`
	EndDate     *time.Time `json:"endDate"`
	IsCompleted *bool      `json:"isCompleted"`
}

type todoResponse struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	StartDate   time.Time  `json:"startDate"`
	EndDate     time.Time  `json:"endDate"`
	IsCompleted bool       `json:"isCompleted"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func toTodoResponse(t model.Todo) todoResponse {
	return todoResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		StartDate:   t.StartDate,
		EndDate:     t.EndDate,
		IsCompleted: t.IsCompleted,
		CompletedAt: t.CompletedAt,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func toTodoListResponse(todos []model.Todo) gin.H {
	out := make([]todoResponse, 0, len(todos))
	for _, t := range todos {
		out = append(out, toTodoResponse(t))
	}
	return gin.H{
		"status":  "success",
		"results": len(out),
		"data":    gin.H{"todos": out},
	}
}

// Create adds a todo for the caller.
func (h *Todo) Create(c *gin.Context) {
	user, ok := httpctx.User(c)
	if !ok {
		writeError(c, model.ErrMissingToken)
		return
	}

	var req createTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}
	if req.StartDate.After(req.EndDate) {
		c.AbortWithStatusJSON(http.StatusBadRequest, errorBody{
			Status:  "error",
			Code:    "validation_failed",
			Message: "Validation failed",
			Errors:  []fieldError{{Field: "startDate", Message: "must be before end date"}},
		})
		return
	}

	todo, err := h.todoService.CreateTodo(c.Request.Context(), model.CreateTodoParams{
		UserID:      user.ID,
		Title:       req.Title,
		Description: req.Description,
		Status:      model.TodoStatus(req.Status),
		Priority:    model.TodoPriority(req.Priority),
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsCompleted: req.IsCompleted,
	})
	if err != nil {
		h.logger.Error("Todo handler: create failed", "user_id", user.ID, "error", err.Error())
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "success", "data": gin.H{"todo": toTodoResponse(todo)}})
}

// List returns the caller's todos, newest first.
func (h *Todo) List(c *gin.Context) {
	user, ok := httpctx.User(c)
	if !ok {
		writeError(c, model.ErrMissingToken)
		return
	}

	todos, err := h.todoService.GetTodos(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("Todo handler: list failed", "user_id", user.ID, "error", err.Error())
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTodoListResponse(todos))
}

// ListOverdue returns the caller's uncompleted todos whose end date
// has passed.
func (h *Todo) ListOverdue(c *gin.Context) {
	user, ok := httpctx.User(c)
	if !ok {
		writeError(c, model.ErrMissingToken)
		return
	}

	todos, err := h.todoService.GetOverdueTodos(c.Request.Context(), user.ID)
	if err != nil {
		h.logger.Error("Todo handler: overdue list failed", "user_id", user.ID, "error", err.Error())
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toTodoListResponse(todos))
}

// Get returns a single todo owned by the caller.
func (h *Todo) Get(c *gin.Context) {
	user, ok := httpctx.User(c)
	if !ok {
		writeError(c, model.ErrMissingToken)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, model.ErrNotFound)
		return
	}

	todo, err := h.todoService.GetTodo(c.Request.Context(), user.ID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"todo": toTodoResponse(todo)}})
}

// Update applies a partial update to a todo owned by the caller.
func (h *Todo) Update(c *gin.Context) {
	user, ok := httpctx.User(c)
	if !ok {
		writeError(c, model.ErrMissingToken)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, model.ErrNotFound)
		return
	}

	var req updateTodoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	params := model.UpdateTodoParams{
		UserID:      user.ID,
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		StartDate:   req.StartDate,
		EndDate:     req.EndDate,
		IsCompleted: req.IsCompleted,
	}
	if req.Status != nil {
		status := model.TodoStatus(*req.Status)
		params.Status = &status
	}
	if req.Priority != nil {
		priority := model.TodoPriority(*req.Priority)
		params.Priority = &priority
	}

	todo, err := h.todoService.UpdateTodo(c.Request.Context(), params)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"todo": toTodoResponse(todo)}})
}

// Toggle flips a todo's completion state.
func (h *Todo) Toggle(c *gin.Context) {
	user, ok := httpctx.User(c)
	if !ok {
		writeError(c, model.ErrMissingToken)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, model.ErrNotFound)
		return
	}

	todo, err := h.todoService.ToggleComplete(c.Request.Context(), user.ID, id)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "data": gin.H{"todo": toTodoResponse(todo)}})
}

// Delete removes a todo owned by the caller.
func (h *Todo) Delete(c *gin.Context) {
	user, ok := httpctx.User(c)
	if !ok {
		writeError(c, model.ErrMissingToken)
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		writeError(c, model.ErrNotFound)
		return
	}

	if err := h.todoService.DeleteTodo(c.Request.Context(), user.ID, id); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
