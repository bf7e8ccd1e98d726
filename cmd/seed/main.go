// Command seed loads sample users and posts into the configured store.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/dashkit/admin-api/internal/infrastructure/db"
	"github.com/dashkit/admin-api/internal/pkg/config"
	"github.com/dashkit/admin-api/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := logger.Init(logger.Options{})
		bootLog.Fatal().Err(err).Msg("failed to load configuration")
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Service: "seed"})

	backend, err := db.Open(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to open store")
	}
	defer backend.Close(context.Background())

	adminPassword := os.Getenv("SEED_ADMIN_PASSWORD")
	if adminPassword == "" {
		adminPassword = defaultAdminPassword
	}

	res, err := seed(ctx, backend.Users, backend.Posts, adminPassword)
	if err != nil {
		log.Fatal().Err(err).Msg("seeding failed")
	}
	log.Info().
		Int("users_created", res.Users).
		Int("users_skipped", res.Skipped).
		Int("posts_created", res.Posts).
		Msg("database seeding completed")
}
