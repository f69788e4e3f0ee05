package main

import (
	"context"

	"go.uber.org/zap"

	"alumnidir/internal/config"
	"alumnidir/internal/db"
	"alumnidir/internal/logger"
	"alumnidir/internal/repository"
	"alumnidir/internal/seed"
	"alumnidir/internal/service"
)

func main() {
	cfg := config.Load()

	log, err := logger.New(logger.LogConfig{
		Level:       cfg.LogLevel,
		Environment: cfg.Environment,
		ServiceName: cfg.ServiceName + "-seed",
	})
	if err != nil {
		panic("logger init: " + err.Error())
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting seed script...")

	gormDB, err := db.Open(db.Options{
		Driver:          cfg.DBDriver,
		DSN:             cfg.DatabaseDSN,
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxLifetime: cfg.DBConnMaxLifetime,
		LogLevel:        cfg.DBLogLevel,
	})
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.Migrate(gormDB); err != nil {
		log.Fatal("Failed to run migrations", zap.Error(err))
	}
	log.Info("Database migrations completed")

	ctx := context.Background()

	source := cfg.SeedSource
	if source == "" {
		source = "built-in fixture"
	}
	log.Info("Loading fixture", zap.String("source", source))
	fixture, err := seed.Load(ctx, cfg.SeedSource)
	if err != nil {
		log.Fatal("Failed to load fixture", zap.Error(err))
	}

	userRepo := repository.NewUserRepository(gormDB)
	seeder := seed.NewSeeder(
		service.NewUserService(userRepo, nil, 0),
		userRepo,
		repository.NewInternshipRepository(gormDB),
		repository.NewProjectRepository(gormDB),
		repository.NewLookupRepository(gormDB),
		log,
	)

	res, err := seeder.Run(ctx, fixture)
	if err != nil {
		log.Fatal("Failed to seed", zap.Error(err))
	}

	log.Info("Seed completed successfully!",
		zap.Int("programmes", res.Programmes),
		zap.Int("branches", res.Branches),
		zap.Int("users_created", res.UsersCreated),
		zap.Int("users_skipped", res.UsersSkipped),
		zap.Int("internships", res.Internships),
		zap.Int("projects", res.Projects),
	)
}
