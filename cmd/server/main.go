package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"

	"alumnidir/docs"
	"alumnidir/internal/cache"
	"alumnidir/internal/config"
	"alumnidir/internal/db"
	"alumnidir/internal/handler"
	"alumnidir/internal/logger"
	"alumnidir/internal/metrics"
	"alumnidir/internal/repository"
	"alumnidir/internal/router"
	"alumnidir/internal/service"
)

// @title Alumni Directory API
// @version 1.0
// @description Student and alumni directory: user CRUD, joined directory listing and composite profiles.
// @host localhost:3000
// @BasePath /
// @schemes http
func main() {
	cfg := config.Load()

	log, err := logger.New(logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		ServiceName: cfg.ServiceName,
	})
	if err != nil {
		panic("logger init: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	gormDB, err := db.Open(db.Options{
		Driver:          cfg.DBDriver,
		DSN:             cfg.DatabaseDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		LogLevel:        cfg.DBLogLevel,
	})
	if err != nil {
		log.Fatal("database init", zap.Error(err))
	}

	if cfg.ResetDB {
		log.Warn("RESET_DB=true detected, dropping all tables")
		if err := db.Reset(gormDB); err != nil {
			log.Fatal("reset database", zap.Error(err))
		}
	}
	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("auto-migrate", zap.Error(err))
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() { _ = cacheClient.Close() }()
	if cfg.CacheEnabled() {
		log.Info("read cache enabled", zap.String("redis_addr", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	internshipRepo := repository.NewInternshipRepository(gormDB)
	projectRepo := repository.NewProjectRepository(gormDB)
	lookupRepo := repository.NewLookupRepository(gormDB)

	// Initialize services
	userService := service.NewUserService(userRepo, cacheClient, cfg.CacheTTL)
	profileService := service.NewProfileService(userRepo, internshipRepo, projectRepo, cacheClient, cfg.CacheTTL)
	lookupService := service.NewLookupService(lookupRepo)

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	httpMetrics := metrics.NewHTTPMetrics(cfg.ServiceName, registry)

	if cfg.SwaggerHost != "" {
		docs.SwaggerInfo.Host = cfg.SwaggerHost
	}

	e := echo.New()
	e.HideBanner = true
	router.Register(e, log, httpMetrics, registry, router.Handlers{
		Health: handler.NewHealthHandler(gormDB),
		User:   handler.NewUserHandler(userService, profileService, cfg.RedactInternalErrors),
		Lookup: handler.NewLookupHandler(lookupService, cfg.RedactInternalErrors),
	})

	go func() {
		addr := ":" + cfg.ServerPort
		log.Info("Starting server", zap.String("addr", addr), zap.String("swagger", "/swagger/index.html"))
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("server start", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info("Shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Error("shutdown", zap.Error(err))
	}
	log.Info("Server stopped gracefully")
}
