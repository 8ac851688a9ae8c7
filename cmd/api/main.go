// PIX Gateway Adapter
//
// This is the main entry point for the service. It wires up all dependencies
// and starts the HTTP server.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/telepix/pix-gateway/config"
	"github.com/telepix/pix-gateway/internal/api"
	"github.com/telepix/pix-gateway/internal/domain"
	"github.com/telepix/pix-gateway/internal/gateway"
	"github.com/telepix/pix-gateway/internal/logging"
	"github.com/telepix/pix-gateway/internal/metrics"
	"github.com/telepix/pix-gateway/internal/pix"
	"github.com/telepix/pix-gateway/internal/storage"
)

func main() {
	log.Println("Starting PIX Gateway Adapter...")

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Configuration error: %v", err)
	}

	logger := logging.GetLogger(cfg.Observability.LokiURL)
	logger.Info("configuration loaded",
		"port", cfg.Server.Port,
		"api_base", cfg.Gateway.APIBase,
		"public_key", logging.MaskSecret(cfg.Gateway.PublicKey))

	metrics.Setup(cfg.Observability.MetricsPushURL,
		cfg.Observability.MetricsIntervalMs,
		cfg.Observability.MetricsLabels)

	// Optional persistence: without DATABASE_URL the adapter runs stateless.
	var store domain.TransactionStore
	if cfg.Database.URL != "" {
		if err := storage.RunMigrations(cfg.Database.URL, cfg.Database.MigrationsDir); err != nil {
			log.Fatalf("Migration error: %v", err)
		}
		pool, err := storage.Connect(context.Background(), cfg.Database.URL)
		if err != nil {
			log.Fatalf("Database error: %v", err)
		}
		defer pool.Close()
		store = storage.NewTransactionStore(pool)
		logger.Info("transaction persistence enabled")
	} else {
		logger.Warn("DATABASE_URL not set, transaction persistence disabled")
	}

	// Wire up dependencies (manual dependency injection)
	gatewayClient := gateway.NewClient(cfg.Gateway.PublicKey, cfg.Gateway.SecretKey, logger)
	endpoints := pix.Endpoints{
		Base:           cfg.Gateway.APIBase,
		CreateOverride: cfg.Gateway.CreateOverride,
	}
	verifier := pix.NewWebhookVerifier(cfg.Gateway.WebhookSecret)

	service := pix.NewService(
		gatewayClient,
		store,
		endpoints,
		cfg.Gateway.WebhookBaseURL,
		verifier,
		logger,
	)

	handler := api.NewHandler(service)
	router := api.SetupRouter(handler, cfg.Server.GinMode)

	// Start server in a goroutine
	serverAddr := fmt.Sprintf(":%s", cfg.Server.Port)
	go func() {
		logger.Info("server listening", "addr", serverAddr)
		if err := router.Run(serverAddr); err != nil {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
}
