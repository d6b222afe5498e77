package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"sheep-dashboard/internal/adapters/storage/postgres"
	"sheep-dashboard/internal/adapters/storage/redis"
	"sheep-dashboard/internal/config"
	"sheep-dashboard/internal/platform/kv"
	"sheep-dashboard/internal/platform/logger"
	"sheep-dashboard/internal/platform/metrics"
	"sheep-dashboard/internal/router"
)

// @title Sheep Dashboard API
// @version 1.0
// @description BFF del dashboard de venta de ovejas: sesión, catálogo y solicitudes de compra.
// @BasePath /
func main() {
	configPath := flag.String("config", "", "directorio con config.yaml (opcional)")
	flag.Parse()

	// logger de arranque (LOG_LEVEL/LOG_FORMAT/APP_NAME) hasta tener config
	boot := logger.NewFromEnv()

	cfg, err := config.Load(*configPath)
	if err != nil {
		boot.Error("config load failed", map[string]any{"err": err, "path": *configPath})
		os.Exit(1)
	}

	app := os.Getenv("APP_NAME")
	if app == "" {
		app = "sheep-dashboard"
	}
	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    app,
	})

	if err := run(cfg, log); err != nil {
		log.Error("server stopped with error", map[string]any{"err": err})
		os.Exit(1)
	}
}

func run(cfg *config.Config, log logger.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openKV(cfg.Storage)
	if err != nil {
		return err
	}
	defer closeStore()

	var db *sql.DB
	if cfg.Notifications.Store == router.NotificationsPostgres {
		db, err = postgres.Open(ctx, postgres.Config{DSN: cfg.Database.DSN, MaxOpenConns: cfg.Database.MaxOpenConns})
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()
	}

	h, err := router.NewRouter(router.Options{
		Logger:             log,
		Metrics:            metrics.New(),
		KV:                 store,
		BackendURL:         cfg.Backend.BaseURL,
		BackendTimeout:     cfg.Backend.Timeout,
		NotificationsStore: cfg.Notifications.Store,
		DB:                 db,
		DemoEnabled:        cfg.Auth.DemoEnabled,
	})
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      h,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{
			"addr":     cfg.Server.Addr,
			"backend":  cfg.Backend.BaseURL,
			"storage":  cfg.Storage.Driver,
			"notif_db": cfg.Notifications.Store,
		})
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

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openKV(cfg config.StorageConfig) (kv.Store, func(), error) {
	switch cfg.Driver {
	case "memory":
		return kv.NewMemory(), func() {}, nil
	case "redis":
		s, err := redis.Open(redis.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("open redis: %w", err)
		}
		return s, closer(s), nil
	default:
		s, err := kv.NewFile(cfg.Path)
		if err != nil {
			return nil, nil, fmt.Errorf("open state file: %w", err)
		}
		return s, func() {}, nil
	}
}

func closer(c io.Closer) func() {
	return func() { _ = c.Close() }
}
