package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"hostel-income-backend/config"
	"hostel-income-backend/internal/api"
	"hostel-income-backend/internal/db"
	"hostel-income-backend/internal/notification"
	"hostel-income-backend/internal/report"
	"hostel-income-backend/internal/scheduler"
	"hostel-income-backend/internal/store"
	"hostel-income-backend/internal/upstream"
	"hostel-income-backend/pkg/logger"
)

func main() {
	log := logger.Must(logger.New())
	defer log.Sync()

	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatal("failed to load configuration", zap.String("path", configPath), zap.Error(err))
	}
	log.Info("configuration loaded", zap.String("path", configPath))

	var webpushOptions *webpush.Options
	if cfg.Push.PublicKey != "" && cfg.Push.PrivateKey != "" {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
	} else {
		log.Warn("VAPID keys are not configured; push notifications are disabled")
	}

	gormDB, err := db.Init(&cfg.Database, logger.Named(log, "db"))
	if err != nil {
		log.Fatal("failed to initialize database", zap.Error(err))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	appStore := store.NewGormStore(gormDB)

	client := upstream.NewClient(cfg.Upstream, logger.Named(log, "upstream"))
	fetcher := upstream.NewFetcher(client, cfg.Upstream.FetchWorkers, logger.Named(log, "upstream"))
	engine := report.NewEngine(fetcher, logger.Named(log, "report"))

	pool := notification.NewWorkerPool(cfg.WorkerPool.Size, appStore, webpushOptions, logger.Named(log, "notification"))
	pool.Start(ctx)

	sched := scheduler.New(cfg.Schedule, engine, pool, logger.Named(log, "scheduler"))
	if err := sched.Start(); err != nil {
		log.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	router := api.NewRouter(appStore, engine, &cfg.Server, webpushOptions, logger.Named(log, "api"))
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Info("HTTP server starting", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("HTTP server ListenAndServe", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	log.Info("shutdown signal received, stopping services")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatal("HTTP server shutdown", zap.Error(err))
	}

	log.Info("server gracefully stopped")
}
