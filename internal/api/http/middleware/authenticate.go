package middleware

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/akorchagin/taskvault/internal/api/http/httpctx"
	"github.com/akorchagin/taskvault/internal/logger"
	"github.com/akorchagin/taskvault/internal/model"
)

// TokenVerifier resolves the subject of an access token.
type TokenVerifier interface {
	ParseAccessToken(token string) (uuid.UUID, error)
}

// UserResolver loads a user by ID.
type UserResolver interface {
	GetByID(ctx context.Context, id uuid.UUID) (model.User, error)
}

// Authenticate gates protected routes: it extracts the bearer token,
// verifies it and resolves the subject to a stored user.
type Authenticate struct {
	tokens TokenVerifier
	users  UserResolver
	logger *logger.Logger
}

// NewAuthenticate creates a new Authenticate middleware instance.
func NewAuthenticate(tokens TokenVerifier, users UserResolver, logger *logger.Logger) *Authenticate {
	return &Authenticate{tokens: tokens, users: users, logger: logger}
}

// Handler returns the gin middleware. On success the resolved user is
// attached to the request context; there are no other side effects.
func (m *Authenticate) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := m.authenticate(c)
		if err != nil {
			m.logger.Info("authentication failed", "path", c.FullPath(), "error", err.Error())
			abortWithAuthError(c, err)
			return
		}

		httpctx.SetUser(c, user)
		c.Next()
	}
}

// RequireRoles returns a gate that additionally restricts the route
// to callers holding one of the allowed roles. It assumes Handler ran
// earlier in the chain.
func (m *Authenticate) RequireRoles(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := httpctx.User(c)
		if !ok {
			abortWithAuthError(c, model.ErrMissingToken)
			return
		}
		if !slices.Contains(roles, user.Role) {
			m.logger.Info("access denied", "path", c.FullPath(), "user_id", user.ID, "role", user.Role)
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
				"status":  "error",
				"code":    "forbidden",
				"message": "You do not have permission to perform this action",
			})
			return
		}
		c.Next()
	}
}

func (m *Authenticate) authenticate(c *gin.Context) (model.User, error) {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	token = strings.TrimSpace(token)
	if !found || token == "" {
		return model.User{}, model.ErrMissingToken
	}

	userID, err := m.tokens.ParseAccessToken(token)
	if err != nil {
		return model.User{}, err
	}

	user, err := m.users.GetByID(c.Request.Context(), userID)
	if errors.Is(err, model.ErrNotFound) {
		// Valid token for a since-deleted account.
		return model.User{}, model.ErrUserGone
	}
	if err != nil {
		return model.User{}, err
	}

	return user, nil
}

// abortWithAuthError writes the 401 family. Expired and malformed
// tokens carry distinct codes: expired means the client should
// refresh, malformed means it should re-authenticate.
func abortWithAuthError(c *gin.Context, err error) {
	code := "unauthorized"
	message := "You are not logged in. Please log in to get access."
	status := http.StatusUnauthorized

	switch {
	case errors.Is(err, model.ErrMissingToken):
		code = "missing_token"
	case errors.Is(err, model.ErrTokenExpired):
		code = "token_expired"
		message = "Your token has expired. Please log in again."
	case errors.Is(err, model.ErrTokenMalformed), errors.Is(err, model.ErrTokenKindMismatch):
		code = "token_invalid"
		message = "Invalid token. Please log in again."
	case errors.Is(err, model.ErrUserGone):
		code = "user_gone"
		message = "The user no longer exists."
	default:
		status = http.StatusInternalServerError
		code = "internal"
		message = "Something went wrong"
	}

	c.AbortWithStatusJSON(status, gin.H{
		"status":  "error",
		"code":    code,
		"message": message,
	})
}
