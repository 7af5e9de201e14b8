// cmd/server/main.go
package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/aims-retail/aims-backend/internal/api"
	"github.com/aims-retail/aims-backend/internal/cache"
	"github.com/aims-retail/aims-backend/internal/config"
	"github.com/aims-retail/aims-backend/internal/importer"
	"github.com/aims-retail/aims-backend/internal/mailer"
	"github.com/aims-retail/aims-backend/internal/realtime"
	"github.com/aims-retail/aims-backend/internal/repository"
	"github.com/aims-retail/aims-backend/internal/repository/postgres"
	"github.com/aims-retail/aims-backend/internal/service"
	"github.com/aims-retail/aims-backend/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Initialize repositories
	inventoryRepo := repository.NewInventoryRepository(db)
	salesRepo := repository.NewSalesRepository(db.DB)
	notificationRepo := repository.NewNotificationRepository(db.DB)
	replenishmentRepo := repository.NewReplenishmentRepository(db.DB)
	defectRepo := repository.NewDefectRepository(db.DB)
	discountRepo := repository.NewDiscountRepository(db.DB)

	// Initialize caches. Both fall back to in-process behavior when
	// Redis is disabled, so a cache outage never blocks startup.
	summaryCache, err := cache.NewSummaryCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("summary cache unavailable, using noop cache")
		summaryCache = cache.NewNoopSummaryCache()
	}
	requestStore, err := cache.NewRequestStore(cfg.Cache)
	if err != nil {
		log.Fatalf("Failed to initialize request store: %v", err)
	}

	mail := mailer.New(cfg.Mail)
	hub := realtime.NewHub()

	// Initialize services
	services := &api.Services{
		Inventory:     service.NewInventoryService(inventoryRepo, replenishmentRepo, summaryCache, hub),
		Sales:         service.NewSalesService(salesRepo, inventoryRepo, notificationRepo, summaryCache, hub),
		Notifications: service.NewNotificationService(notificationRepo),
		Replenishment: service.NewReplenishmentService(replenishmentRepo, hub),
		Reorder:       service.NewReorderService(inventoryRepo, salesRepo, notificationRepo, replenishmentRepo, hub),
		Expiry:        service.NewExpiryService(inventoryRepo, salesRepo, notificationRepo, hub),
		Discounts:     service.NewDiscountService(discountRepo, inventoryRepo, notificationRepo),
		Defects:       service.NewDefectService(defectRepo, inventoryRepo, notificationRepo, mail, hub),
		Restock:       service.NewRestockService(requestStore, mail, cfg.Server.PublicBaseURL),
		Optimization:  service.NewOptimizationService(inventoryRepo, summaryCache, hub),
		Analytics:     service.NewAnalyticsService(inventoryRepo, salesRepo),
		Vision:        service.NewVisionService(cfg.Vision, inventoryRepo, hub),
	}

	rootCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Optional Drive importer keeps the inventory synced with CSV
	// exports dropped into a shared folder.
	if cfg.Importer.Enabled {
		imp, err := importer.New(cfg.Importer, inventoryRepo)
		if err != nil {
			logger.Log.Error().Err(err).Msg("importer disabled: initialization failed")
		} else {
			go imp.Run(rootCtx)
		}
	}

	// Initialize HTTP server
	router := api.NewRouter(services, hub, cfg.Server.AllowedOrigins)
	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	<-rootCtx.Done()
	logger.Log.Info().Msg("Shutting down server...")

	// The context is used to inform the server it has 5 seconds to finish
	// the request it is currently handling
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
