package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	redisv9 "github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"

	"orderup_backend/internal/app/config"
	"orderup_backend/internal/app/di"
	"orderup_backend/internal/app/router"
	infradb "orderup_backend/internal/platform/db"
	"orderup_backend/internal/platform/http/handler"
	jwtmw "orderup_backend/internal/platform/jwt"
	"orderup_backend/internal/platform/metrics"
	"orderup_backend/internal/platform/realtime"
	infraredis "orderup_backend/internal/platform/redis"
	"orderup_backend/internal/platform/storage"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server exited", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// db
	db, err := infradb.OpenDB(cfg.DB, di.Models()...)
	if err != nil {
		return err
	}

	// Redis
	var rdb *redisv9.Client
	if cfg.Redis.Enabled() {
		if tmp, err := infraredis.NewRedisClient(ctx, cfg.Redis); err != nil {
			slog.Warn("Redis unavailable. Running without cache; sessions fall back to PostgreSQL.")
		} else {
			rdb = tmp
			defer func() {
				if err := rdb.Close(); err != nil {
					slog.Error("failed to close Redis client", "error", err)
				}
			}()
		}
	}

	m := metrics.New()
	hub := realtime.NewHub(cfg.AllowedOrigins)
	images := storage.NewLocalStorage(cfg.Storage)

	app := di.NewApp(di.Deps{
		DB:         db,
		Redis:      rdb,
		Tokens:     jwtmw.NewGenerator(cfg.JWT.Secret, cfg.JWT.AccessTTL),
		OTP:        di.NewOTPSender(cfg.SMS),
		Images:     images,
		Metrics:    m,
		Hub:        hub,
		SessionTTL: cfg.SessionTTL,
		CacheTTL:   cfg.CacheTTL,
	})

	ready := map[string]handler.Pinger{
		"db": func(ctx context.Context) error { return infradb.Ping(ctx, db) },
	}
	if rdb != nil {
		ready["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	r := router.NewRouter(app.Handlers, router.Options{
		Verifier:       jwtmw.NewVerifier(cfg.JWT.Secret),
		Metrics:        m.Handler(),
		Middleware:     []gin.HandlerFunc{m.Middleware()},
		OrderFeed:      hub.ServeWS,
		Ready:          ready,
		AllowedOrigins: cfg.AllowedOrigins,
		UploadDir:      images.Dir(),
	})

	// Expired refresh sessions
	c := cron.New()
	if _, err := c.AddFunc(cfg.CleanupSchedule, func() {
		jobCtx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()
		n, err := app.Sessions.CleanupExpiredSessions(jobCtx)
		if err != nil {
			slog.Error("session cleanup failed", "error", err)
			return
		}
		m.SessionsPurged(n)
		slog.Info("expired sessions purged", "count", n)
	}); err != nil {
		return err
	}
	c.Start()
	defer c.Stop()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	slog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
