package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"clinic-booking-api/internal/config"
	"clinic-booking-api/internal/handler"
	"clinic-booking-api/internal/middleware"
	"clinic-booking-api/internal/store"
	"clinic-booking-api/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		logging.Default().Error("config", "err", err)
		os.Exit(1)
	}
	logger := logging.New(cfg.LogLevel)

	// database
	pool, err := pgxpool.New(context.Background(), cfg.DatabaseURL)
	if err != nil {
		logger.Error("db connect", "err", err)
		os.Exit(1)
	}
	defer pool.Close()
	if err := pool.Ping(context.Background()); err != nil {
		logger.Error("db ping", "err", err)
		os.Exit(1)
	}
	logger.Info("connected to postgres")

	// run migrations
	if migration, err := os.ReadFile(cfg.MigrationsFile); err != nil {
		logger.Warn("migration file not found, skipping", "err", err)
	} else if _, err := pool.Exec(context.Background(), string(migration)); err != nil {
		logger.Warn("migration", "err", err)
	} else {
		logger.Info("migration applied")
	}

	st := store.New(pool)
	h := handler.New(st, cfg.JWTSecret, logger).WithWindow(cfg.BookingWindowDays)
	rl := middleware.NewRateLimiter(cfg.AuthRateLimitRPS, cfg.AuthRateLimitBurst)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler.Router(h, cfg.JWTSecret, rl, logger),
	}
	go func() {
		logger.Info("listening", "port", cfg.Port, "env", cfg.Env)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http", "err", err)
		}
	}()

	// graceful shutdown
	ch := make(chan os.Signal, 1)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	<-ch
	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("shutdown", "err", err)
	}
}
