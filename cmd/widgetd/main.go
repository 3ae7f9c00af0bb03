package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"go.uber.org/zap"

	"tavrika-widget/config"
	"tavrika-widget/internal/api"
	"tavrika-widget/internal/db"
	"tavrika-widget/internal/gateway"
	"tavrika-widget/internal/hours"
	"tavrika-widget/internal/host"
	"tavrika-widget/internal/journal"
	"tavrika-widget/internal/layout"
	"tavrika-widget/internal/logger"
	"tavrika-widget/internal/notification"
	"tavrika-widget/internal/session"
	"tavrika-widget/internal/store"
)

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "./config/config.yaml" // Default path for local development
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("failed to load configuration from %s: %v", configPath, err)
	}

	lg, err := logger.New(&cfg.Log)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer lg.Sync()
	lg.Info("configuration loaded", zap.String("path", configPath))

	gormDB, err := db.Init(&cfg.Database, lg)
	if err != nil {
		lg.Fatal("failed to initialize database", zap.Error(err))
	}
	appStore := store.NewGormStore(gormDB)
	lg.Info("database initialized", zap.String("driver", cfg.Database.Driver))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Staff pushes are optional; without VAPID keys the journal still records.
	var notifier journal.Notifier
	var webpushOptions *webpush.Options
	if cfg.Push.Enabled() {
		webpushOptions = &webpush.Options{
			VAPIDPublicKey:  cfg.Push.PublicKey,
			VAPIDPrivateKey: cfg.Push.PrivateKey,
			Subscriber:      cfg.Push.Subject,
			TTL:             cfg.Push.TTL,
		}
		pool := notification.NewWorkerPool(cfg.WorkerPool.Size, appStore, webpushOptions, lg.Named("push"))
		pool.Start(ctx)
		notifier = pool
		lg.Info("staff notifications enabled", zap.Int("workers", cfg.WorkerPool.Size))
	} else {
		lg.Warn("VAPID keys are not configured, staff notifications disabled")
	}

	hosted, closeBridge, err := host.FromConfig(&cfg.Host)
	if err != nil {
		lg.Fatal("failed to set up host bridge", zap.String("kind", cfg.Host.Kind), zap.Error(err))
	}
	defer closeBridge()
	lg.Info("host bridge ready", zap.String("kind", cfg.Host.Kind))

	engine := layout.NewEngine(cfg.Layout.Corrections)
	deps := session.Deps{
		Policy:    cfg.Hours.Policy(hours.RealClock{}),
		Occupancy: gateway.NewClient(&cfg.Gateway, lg.Named("gateway")),
		Layout:    engine,
		Logger:    lg.Named("session"),
	}
	recorder := journal.NewRecorder(appStore, notifier, lg.Named("journal"))
	manager := session.NewManager(deps, host.NewSelector(hosted, lg), recorder, cfg.Session.TTL)

	handler := api.NewHandler(manager, appStore, webpushOptions, engine, lg)
	router := api.NewRouter(handler, &cfg.Server, lg.Named("http"))
	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		lg.Info("HTTP server starting", zap.Int("port", cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			lg.Fatal("HTTP server ListenAndServe", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	<-stop
	lg.Info("shutdown signal received, stopping services")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		lg.Error("HTTP server Shutdown", zap.Error(err))
	}

	lg.Info("server gracefully stopped")
}
