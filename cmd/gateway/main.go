package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/DanielPopoola/stripe-plus-gateway/internal/application/services"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/config"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/infrastructure/calllog"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/infrastructure/persistence/postgres"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/infrastructure/stripe"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/interfaces/rest/handlers"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/interfaces/rest/middleware"
	"github.com/DanielPopoola/stripe-plus-gateway/internal/worker"
)

// Usage:
//
//	gateway                            serve
//	gateway uninstall [last-instance]  drop the gateway tables and exit
//	gateway encrypt-key [api key]      print the key sealed with stripe.encryption_key
func main() {
	if len(os.Args) > 1 && os.Args[1] == "encrypt-key" {
		encryptionKey, err := config.LoadEncryptionKey()
		if err != nil {
			slog.Error("failed to load encryption key", "error", err)
			os.Exit(1)
		}
		if err := encryptKey(os.Stdout, os.Stdin, os.Args[2:], encryptionKey); err != nil {
			slog.Error("failed to encrypt api key", "error", err)
			os.Exit(1)
		}
		return
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := cfg.Logger.NewLogger()
	slog.SetDefault(logger)

	ctx := context.Background()
	db, err := postgres.Connect(ctx, &cfg.Database, logger)
	if err != nil {
		logger.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if len(os.Args) > 1 && os.Args[1] == "uninstall" {
		lastInstance := len(os.Args) > 2 && strings.EqualFold(os.Args[2], "last-instance")
		if err := db.Uninstall(ctx, lastInstance); err != nil {
			logger.Error("failed to uninstall gateway schema", "error", err)
			os.Exit(1)
		}
		logger.Info("gateway schema uninstalled", "last_instance", lastInstance)
		return
	}

	if err := db.Install(ctx); err != nil {
		logger.Error("failed to install gateway schema", "error", err)
		os.Exit(1)
	}

	apiKey, err := cfg.Stripe.SelectedKey()
	if err != nil {
		logger.Error("failed to read api key", "error", err)
		os.Exit(1)
	}

	logger.Info("starting gateway service",
		"port", cfg.Server.Port,
		"log_level", cfg.Logger.Level,
		"live", cfg.Stripe.IsLive(),
	)

	processor := stripe.NewRetryProcessor(stripe.NewClient(cfg.Stripe, apiKey), cfg.Retry)

	callLogRepo := postgres.NewCallLogRepository(db)
	callLog := calllog.NewLogger(
		strings.TrimSuffix(cfg.Stripe.BaseURL, "/")+"/v1/",
		calllog.MultiSink{
			calllog.NewSlogSink(logger),
			callLogRepo,
		},
		logger,
	)

	gateway := services.NewGateway(
		processor,
		postgres.NewCustomerMappingRepository(db),
		postgres.NewInvoiceRepository(db),
		callLog,
		logger,
	)

	mux := http.NewServeMux()
	handlers.NewHandlers(gateway, logger).RegisterRoutes(mux)

	handler := middleware.Recovery(logger)(mux)
	handler = middleware.Logging(logger)(handler)
	handler = middleware.Timeout(cfg.Server.ReadTimeout)(handler)

	server := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Server.Port,
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	pruner := worker.NewCallLogPruner(
		callLogRepo,
		cfg.Worker.Interval,
		cfg.Worker.Retention,
		cfg.Worker.BatchSize,
		logger,
	)

	workerCtx, cancelWorkers := context.WithCancel(context.Background())
	defer cancelWorkers()

	go pruner.Start(workerCtx)

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	cancelWorkers()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
	}

	logger.Info("server exited")
}
