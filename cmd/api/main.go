// @title                       Admin Dashboard API
// @version                     1.0
// @description                 User and post administration backend for the admin dashboard.
// @host                        localhost:8080
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
// @description                 Type "Bearer" followed by a space and the session token.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	_ "github.com/dashkit/admin-api/docs"
	"github.com/dashkit/admin-api/internal/api"
	"github.com/dashkit/admin-api/internal/core/ports"
	"github.com/dashkit/admin-api/internal/core/service"
	"github.com/dashkit/admin-api/internal/infrastructure/db"
	"github.com/dashkit/admin-api/internal/infrastructure/db/memory"
	redisstore "github.com/dashkit/admin-api/internal/infrastructure/db/redis"
	"github.com/dashkit/admin-api/internal/infrastructure/queue"
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

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "admin-api",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server exited with error")
	}
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	backend, err := db.Open(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := backend.Close(closeCtx); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	readiness := map[string]ports.Pinger{"store": backend.Pinger}

	// --- Session revocation: redis when configured, otherwise process memory ---
	sessions := backend.Sessions
	if cfg.Redis.Addr != "" {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return err
		}
		defer rdb.Close()
		sessions = redisstore.NewSessionStore(rdb)
		readiness["redis"] = redisstore.Pinger{Client: rdb}
		log.Info().Str("addr", cfg.Redis.Addr).Msg("connected to redis")
	}
	if sessions == nil {
		sessions = memory.NewStore().Sessions()
		log.Warn().Msg("REDIS_ADDR not set; session revocations are kept in memory")
	}

	// --- Activity recording ---
	activityService := service.NewActivityService(backend.Activities, log)
	dispatcher := queue.NewDispatcher(cfg.ActivityWorkers, activityService, log)
	dispatcher.Start()

	// --- Services ---
	userService := service.NewUserService(backend.Users, backend.Posts, backend.Tx, dispatcher, log)
	postService := service.NewPostService(backend.Posts, backend.Users, dispatcher, log)
	authService := service.NewAuthService(backend.Users, sessions, dispatcher, cfg.JWTSecret, cfg.SessionTTL, log)
	statusService := service.NewStatusService(backend.Pinger, backend.Users, backend.Posts, log)

	e := api.NewRouter(api.Deps{
		Users:      userService,
		Posts:      postService,
		Auth:       authService,
		Activities: activityService,
		Status:     statusService,
		Sessions:   sessions,
		Accounts:   backend.Users,
		Readiness:  readiness,
		JWTSecret:  cfg.JWTSecret,
		Logger:     log,
	})

	log.Info().Str("port", cfg.Port).Str("store", backend.Driver).Msg("http server listening")
	return serve(ctx, e, ":"+cfg.Port, dispatcher, cfg.ShutdownTimeout, log)
}

