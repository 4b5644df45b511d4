package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/cockroachdb/errors"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"onlinemaid-backend/config"
	"onlinemaid-backend/internal/api"
	"onlinemaid-backend/internal/db"
	"onlinemaid-backend/internal/logging"
	"onlinemaid-backend/internal/notification"
	"onlinemaid-backend/internal/store"
)

func main() {
	migrateOnly := flag.Bool("migrate", false, "apply pending migrations and exit")
	flag.Parse()

	// A .env file is optional; real environment variables win.
	_ = godotenv.Load()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	logger, err := logging.New(cfg.Logging.Level, cfg.Logging.Format, "onlinemaid")
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()
	logger.Info("configuration loaded", zap.String("path", configPath))

	if err := run(cfg, logger, *migrateOnly); err != nil {
		logger.Fatal("exiting", zap.Error(err))
	}
}

func run(cfg *config.Config, logger *zap.Logger, migrateOnly bool) error {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	gormDB, err := db.Init(ctx, &cfg.Database, logger)
	if err != nil {
		return err
	}
	if migrateOnly {
		return nil
	}

	appStore := store.NewGormStore(gormDB)

	var (
		webpushOptions *webpush.Options
		notifier       api.Notifier
		pool           *notification.WorkerPool
	)
	if cfg.Push.Enabled() {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool = notification.NewWorkerPool(cfg.WorkerPool.Size, cfg.WorkerPool.QueueSize, appStore, webpushOptions, logger)
		pool.Start(ctx)
		notifier = pool
	} else {
		logger.Warn("VAPID keys are not configured; enquiry notifications are disabled")
	}

	router := api.NewRouter(cfg, appStore, webpushOptions, notifier, logger)
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("HTTP server starting", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			return err
		}
	case <-ctx.Done():
		logger.Info("shutdown signal received, stopping services")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	cancel()
	if pool != nil {
		pool.Wait()
	}
	logger.Info("server gracefully stopped")
	return nil
}
