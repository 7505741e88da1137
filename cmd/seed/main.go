package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"admindash/internal/auth"
	"admindash/internal/cache"
	"admindash/internal/config"
	"admindash/internal/db"
	apperrors "admindash/internal/errors"
	"admindash/internal/logger"
	"admindash/internal/model"
	"admindash/internal/repository"
	"admindash/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "seed: logger init: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = log.Sync() }()

	if err := run(context.Background(), cfg, log); err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	log.Info("starting seed")

	gormDB, err := db.Open(cfg)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	if err := db.Migrate(gormDB); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	log.Info("database migrations completed")

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	defer func() { _ = cacheClient.Close() }()

	authService := service.NewAuthService(repository.NewAdminRepository(gormDB), auth.NewJWTService(cfg.JWTSecret), cacheClient)

	return seedAdmin(ctx, authService, cfg, log)
}

// seedAdmin creates the configured admin unless its email is already taken.
func seedAdmin(ctx context.Context, authService service.AuthService, cfg *config.Config, log *zap.Logger) error {
	admin, err := authService.CreateAdmin(ctx, service.AdminInput{
		Name:     cfg.SeedAdminName,
		Email:    cfg.SeedAdminEmail,
		Password: cfg.SeedAdminPassword,
		Role:     model.RoleAdmin,
	})
	if errors.Is(err, apperrors.ErrAdminExists) {
		log.Info("admin already exists", zap.String("email", model.NormalizeEmail(cfg.SeedAdminEmail)))
		return nil
	}
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}

	log.Info("admin user created",
		zap.String("id", admin.ID.String()),
		zap.String("email", admin.Email),
	)
	return nil
}
