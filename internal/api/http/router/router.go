package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/akorchagin/taskvault/internal/api/http/handler"
	"github.com/akorchagin/taskvault/internal/api/http/middleware"
	"github.com/akorchagin/taskvault/internal/logger"
)

// Router wires handlers and middleware into a gin engine.
type Router struct {
	authService handler.AuthService
	todoService handler.TodoService
	tokens      middleware.TokenVerifier
	users       middleware.UserResolver
	logger      *logger.Logger
}

// New creates new Router instance.
func New(
	authService handler.AuthService,
	todoService handler.TodoService,
	tokens middleware.TokenVerifier,
	users middleware.UserResolver,
	logger *logger.Logger,
) *Router {
	return &Router{
		authService: authService,
		todoService: todoService,
		tokens:      tokens,
		users:       users,
		logger:      logger,
	}
}

// Register registers all routes and middleware.
//
// Returns the configured gin engine.
func (r *Router) Register() *gin.Engine {
	logging := middleware.NewLogging(r.logger)
	authenticate := middleware.NewAuthenticate(r.tokens, r.users, r.logger)

	engine := gin.New()
	engine.Use(gin.Recovery(), logging.Handler())

	engine.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Server is running"})
	})

	r.registerAuthRoutes(engine, authenticate)
	r.registerTodoRoutes(engine, authenticate)

	return engine
}

func (r *Router) registerAuthRoutes(engine *gin.Engine, authenticate *middleware.Authenticate) {
	authHandler := handler.NewAuth(r.authService, r.logger)

	auth := engine.Group("/api/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/refresh", authHandler.Refresh)
	auth.POST("/logout", authenticate.Handler(), authHandler.Logout)
}

func (r *Router) registerTodoRoutes(engine *gin.Engine, authenticate *middleware.Authenticate) {
	todoHandler := handler.NewTodo(r.todoService, r.logger)

	todos := engine.Group("/api/todos", authenticate.Handler())
	todos.POST("", todoHandler.Create)
	todos.GET("", todoHandler.List)
	todos.GET("/overdue", todoHandler.ListOverdue)
	todos.GET("/:id", todoHandler.Get)
	todos.PATCH("/:id", todoHandler.Update)
	todos.PATCH("/:id/toggle", todoHandler.Toggle)
	todos.DELETE("/:id", todoHandler.Delete)
}
