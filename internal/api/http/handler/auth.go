package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akorchagin/taskvault/internal/api/http/httpctx"
	"github.com/akorchagin/taskvault/internal/logger"
	"github.com/akorchagin/taskvault/internal/model"
)

// AuthService defines registration, login, refresh and logout
// operations.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (model.SessionResult, error)
	Login(ctx context.Context, email, password string) (model.SessionResult, error)
	Refresh(ctx context.Context, refreshToken string) (model.SessionResult, error)
	Logout(ctx context.Context, userID uuid.UUID) error
}

// Auth handles HTTP endpoints for authentication.
type Auth struct {
	authService AuthService
	logger      *logger.Logger
}

// NewAuth creates a new Auth handler.
func NewAuth(authService AuthService, logger *logger.Logger) *Auth {
	return &Auth{
		authService: authService,
		logger:      logger,
	}
}

type registerRequest struct {
	Name     string `json:"name" binding:"required,min=2"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

type sessionResponse struct {
	Status       string   `json:"status"`
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	Data         userData `json:"data"`
}

type userData struct {
	User userResponse `json:"user"`
}

// userResponse is the outward user shape. Password hash and refresh
// digest deliberately have no place here.
type userResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt string    `json:"createdAt"`
	UpdatedAt string    `json:"updatedAt"`
}

func toUserResponse(u model.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Role:      u.Role,
		CreatedAt: u.CreatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
		UpdatedAt: u.UpdatedAt.UTC().Format("2006-01-02T15:04:05.000Z07:00"),
	}
}

func toSessionResponse(result model.SessionResult) sessionResponse {
	return sessionResponse{
		Status:       "success",
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		Data:         userData{User: toUserResponse(result.User)},
	}
}

// Register creates a user and returns a fresh token pair.
func (h *Auth) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	result, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		h.logger.Error("Auth handler: registration failed", "error", err.Error())
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toSessionResponse(result))
}

// Login verifies credentials and returns a fresh token pair.
func (h *Auth) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	result, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.logger.Info("Auth handler: login failed", "error", err.Error())
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSessionResponse(result))
}

// Refresh rotates a refresh token into a new pair.
func (h *Auth) Refresh(c *gin.Context) {
	var req refreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeValidationError(c, err)
		return
	}

	result, err := h.authService.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		h.logger.Info("Auth handler: refresh failed", "error", err.Error())
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, toSessionResponse(result))
}

// Logout invalidates the caller's outstanding refresh token. Requires
// an authenticated request.
func (h *Auth) Logout(c *gin.Context) {
	user, ok := httpctx.User(c)
	if !ok {
		writeError(c, model.ErrMissingToken)
		return
	}

	if err := h.authService.Logout(c.Request.Context(), user.ID); err != nil {
		h.logger.Error("Auth handler: logout failed", "user_id", user.ID, "error", err.Error())
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "success",
		"message": "Logged out successfully",
	})
}
