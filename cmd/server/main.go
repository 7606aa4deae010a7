package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/savageaim/backend/internal/api"
	"github.com/savageaim/backend/internal/auth"
	"github.com/savageaim/backend/internal/bis"
	"github.com/savageaim/backend/internal/character"
	"github.com/savageaim/backend/internal/config"
	"github.com/savageaim/backend/internal/notification"
	"github.com/savageaim/backend/internal/taskqueue"
	"github.com/savageaim/backend/internal/team"
	"github.com/savageaim/backend/internal/verify"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	setupLogger(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to create database pool", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	defer rdb.Close()

	queue, err := taskqueue.NewQueue(rdb, cfg.VerifyQueue)
	if err != nil {
		slog.Error("failed to create task queue", "error", err)
		os.Exit(1)
	}

	userRepo := auth.NewRepository(pool)
	charRepo := character.NewRepository(pool)
	teamRepo := team.NewRepository(pool)
	bisRepo := bis.NewRepository(pool)
	notifRepo := notification.NewRepository(pool)
	settingsRepo := notification.NewSettingsRepository(pool)

	authService := auth.NewService(userRepo, cfg.BcryptCost)
	if _, err := authService.BootstrapSuperuser(ctx); err != nil {
		slog.Error("failed to bootstrap superuser", "error", err)
		os.Exit(1)
	}

	if inserted, err := bisRepo.SeedJobs(ctx); err != nil {
		slog.Error("failed to seed jobs", "error", err)
		os.Exit(1)
	} else if inserted > 0 {
		slog.Info("job catalogue seeded", "count", inserted)
	}

	notifier := notification.NewNotifier(notifRepo, settingsRepo)
	verifyService := verify.NewService(charRepo, notifier)
	worker := verify.NewWorker(queue, verifyService)
	go worker.Start(ctx)

	router := api.NewRouter(api.RouterDeps{
		AuthService:  authService,
		UserRepo:     userRepo,
		CharRepo:     charRepo,
		TeamRepo:     teamRepo,
		BISRepo:      bisRepo,
		NotifRepo:    notifRepo,
		SettingsRepo: settingsRepo,
		Dispatcher:   verify.NewDispatcher(queue),
		DBPinger:     pool,
		QueuePinger:  queue,
		Version:      cfg.Version,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server", "port", cfg.Port, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}

func setupLogger(level string) {
	var logLevel slog.Level
	switch level {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})
	slog.SetDefault(slog.New(handler))
}
