package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/teamboard/project-system/docs"
	"github.com/teamboard/project-system/internal/api/handler"
	"github.com/teamboard/project-system/internal/api/middleware"
	"github.com/teamboard/project-system/internal/core/domain"
	"github.com/teamboard/project-system/internal/core/service"
	"github.com/teamboard/project-system/internal/infrastructure/config"
	mongorepo "github.com/teamboard/project-system/internal/infrastructure/db/mongo"
	redisinfra "github.com/teamboard/project-system/internal/infrastructure/db/redis"
	"github.com/teamboard/project-system/internal/infrastructure/queue"
)

// NewRouter builds the Echo instance with every route registered. The returned
// dispatcher must be started by the caller before serving traffic.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config, log zerolog.Logger) (*echo.Echo, *queue.Dispatcher) {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("teamboard"))

	// --- Repositories ---
	userRepo := mongorepo.NewUserRepository(db)
	clientRepo := mongorepo.NewClientRepository(db)
	projectRepo := mongorepo.NewProjectRepository(db)
	taskRepo := mongorepo.NewTaskRepository(db)
	commentRepo := mongorepo.NewCommentRepository(db)
	activityRepo := mongorepo.NewActivityRepository(db)

	// --- Services ---
	activityService := service.NewActivityService(activityRepo, projectRepo, log)
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activityService, log)

	authService := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	userService := service.NewUserService(userRepo, clientRepo, projectRepo, log)
	projectService := service.NewProjectService(projectRepo, taskRepo, commentRepo, userRepo, clientRepo, log)
	taskService := service.NewTaskService(taskRepo, projectRepo, commentRepo, userRepo, dispatcher, log)
	commentService := service.NewCommentService(commentRepo, taskRepo, projectRepo, userRepo, dispatcher, log)

	denylist := redisinfra.NewTokenDenylist(rdb)

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(authService, denylist)
	userHandler := handler.NewUserHandler(userService)
	projectHandler := handler.NewProjectHandler(projectService, taskService, userService, activityService)
	taskHandler := handler.NewTaskHandler(taskService)
	commentHandler := handler.NewCommentHandler(commentService)

	authMW := middleware.Auth(cfg.JWTSecret, denylist)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/signin", authHandler.Signin)
	e.DELETE("/auth/signout", authHandler.Signout, authMW)

	// --- User and client routes ---
	user := e.Group("/user", authMW)
	user.GET("/me", userHandler.Me)
	user.GET("/all", userHandler.List)
	user.GET("/clients", userHandler.ListClients)
	user.GET("/clients/search", userHandler.SearchClients)
	user.POST("/clients", userHandler.CreateClient, middleware.RBAC(string(domain.RoleAdmin)))

	// --- Project, task, and comment routes ---
	post := e.Group("/post", authMW)
	post.POST("/projects", projectHandler.Create)
	post.GET("/projects/all", projectHandler.List)
	post.GET("/projects/with-progress", projectHandler.ListWithProgress)
	post.GET("/projects/:id", projectHandler.Get)
	post.PATCH("/projects/:id", projectHandler.Update)
	post.DELETE("/projects/:id", projectHandler.Delete)
	post.GET("/projects/:id/my-tasks", projectHandler.MyTasks)
	post.GET("/projects/:id/activity", projectHandler.Activity)
	post.GET("/users/:userId/projects", projectHandler.UserProjects)
	post.GET("/users-with-projects", projectHandler.UsersWithProjects)

	post.GET("/tasks", taskHandler.List)
	post.POST("/tasks/:id", taskHandler.Create)
	post.GET("/tasks/:id", taskHandler.ListByProject)
	post.PATCH("/tasks/:id", taskHandler.Update)
	post.DELETE("/tasks/:id", taskHandler.Delete)
	post.GET("/tasks/:id/comments", commentHandler.ListByTask)

	post.POST("/comments", commentHandler.Create)
	post.PATCH("/comments/:id", commentHandler.Update)
	post.DELETE("/comments/:id", commentHandler.Delete)

	// --- Ops surface (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e, dispatcher
}
