package main

import (
	"context"
	"log"
	"time"

	"github.com/impimediavillage/tree-sub001/internal/core/config"
	"github.com/impimediavillage/tree-sub001/internal/core/logger"
	"github.com/impimediavillage/tree-sub001/internal/core/server"
	"github.com/impimediavillage/tree-sub001/internal/core/store"
	reconadapter "github.com/impimediavillage/tree-sub001/internal/features/recon/adapters"
	reconhandler "github.com/impimediavillage/tree-sub001/internal/features/recon/handler"
	reconservice "github.com/impimediavillage/tree-sub001/internal/features/recon/service"
	shippingadapter "github.com/impimediavillage/tree-sub001/internal/features/shipping/adapters"
	shippinghandler "github.com/impimediavillage/tree-sub001/internal/features/shipping/handler"
	"github.com/impimediavillage/tree-sub001/internal/features/shipping/ports"
	shippingservice "github.com/impimediavillage/tree-sub001/internal/features/shipping/service"

	"go.uber.org/zap"
)

// @title Fulfillment API
// @version 1.0
// @description Order fulfillment state and shipping-cost reconciliation for the dispensary marketplace.
// @contact.name API Support
// @contact.email support@impimediavillage.com
// @license.name MIT
// @host localhost:8080
// @BasePath /
func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	if err := logger.Init(cfg.Environment, cfg.LogLevel); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	l := logger.Get()
	l.Info("Application starting",
		zap.String("environment", cfg.Environment),
		zap.String("log_level", cfg.LogLevel),
	)

	// Initialize the document store and verify connectivity.
	redisStore, err := store.NewRedisAdapter(cfg.Redis.URL)
	if err != nil {
		l.Fatal("Failed to create Redis store", zap.Error(err))
	}
	defer redisStore.Close()

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := redisStore.Ping(pingCtx); err != nil {
		l.Fatal("Redis Health Check Failed", zap.Error(err))
	}
	l.Info("Redis connection verified")

	// Initialize Shipping Repository and Notifiers
	orderRepo := shippingadapter.NewRedisOrderRepository(redisStore, cfg.Collections.Orders, cfg.Collections.PoolOrders)

	redisNotifier, err := shippingadapter.NewRedisNotifier(cfg.Redis.URL, cfg.Notify.Channel)
	if err != nil {
		l.Fatal("Failed to create Redis notifier", zap.Error(err))
	}
	notifiers := []ports.Notifier{redisNotifier}
	if cfg.Notify.WebhookURL != "" {
		notifiers = append(notifiers, shippingadapter.NewWebhookNotifier(cfg.Notify.WebhookURL))
	}
	notifier := shippingadapter.NewFanoutNotifier(notifiers...)

	// Initialize Shipping Service & Handler
	statusService := shippingservice.NewStatusService(orderRepo, notifier)
	statusHandler := shippinghandler.NewStatusHandler(statusService)

	// Initialize Reconciliation Services & Handler
	reconRepo := reconadapter.NewRedisReconRepository(redisStore, cfg.Collections.Orders, cfg.Collections.PoolOrders)
	directory := reconadapter.NewRedisDispensaryDirectory(redisStore, cfg.Collections.Dispensaries)
	indexService := reconservice.NewIndexService(reconRepo, directory)
	settlementService := reconservice.NewSettlementService(reconRepo, cfg.Settlement.MaxAttempts)
	reconHandler := reconhandler.NewReconHandler(indexService, settlementService)

	srv := server.New(cfg)

	// Register Routes
	srv.App.Patch("/orders/:id/shipments/:dispensaryId/status", statusHandler.UpdateStatus)
	srv.App.Get("/orders/:id/shipments/:dispensaryId/transitions", statusHandler.AllowedTransitions)

	srv.App.Get("/reconciliation", reconHandler.Query)
	srv.App.Get("/reconciliation/aggregates", reconHandler.Aggregates)
	srv.App.Get("/reconciliation/export", reconHandler.Export)
	srv.App.Post("/reconciliation/invoice", reconHandler.UploadInvoice)
	srv.App.Post("/reconciliation/invoice/apply", reconHandler.ApplyInvoice)
	srv.App.Post("/reconciliation/settle", reconHandler.Settle)
	srv.App.Post("/reconciliation/dispute", reconHandler.Dispute)

	if err := srv.Run(); err != nil {
		l.Fatal("Server failed to start", zap.Error(err))
	}
}
