package router

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"alumnidir/internal/handler"
	"alumnidir/internal/logger"
	"alumnidir/internal/metrics"
)

// Handlers groups the HTTP handlers served by the API.
type Handlers struct {
	Health *handler.HealthHandler
	User   *handler.UserHandler
	Lookup *handler.LookupHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	log *zap.Logger,
	httpMetrics *metrics.HTTPMetrics,
	gatherer prometheus.Gatherer,
	h Handlers,
) {
	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(logger.Middleware(log))
	e.Use(httpMetrics.Middleware())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	e.GET("/", h.Health.Root)
	e.GET("/healthz", h.Health.Healthz)
	e.GET("/metrics", echo.WrapHandler(metrics.Handler(gatherer)))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	e.GET("/users", h.User.ListUsers)
	e.POST("/users", h.User.CreateUser)
	e.GET("/users/:id", h.User.GetUser)
	e.GET("/users/:id/record", h.User.GetUserRecord)
	e.PUT("/users/:id", h.User.UpdateUser)
	e.DELETE("/users/:id", h.User.DeleteUser)
	e.GET("/directory", h.User.ListDirectory)

	e.GET("/programmes", h.Lookup.ListProgrammes)
	e.GET("/branches", h.Lookup.ListBranches)
}
