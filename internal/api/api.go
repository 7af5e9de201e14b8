// internal/api/api.go
package api

import (
	"strings"
	"time"

	"github.com/aims-retail/aims-backend/internal/api/handlers"
	"github.com/aims-retail/aims-backend/internal/api/middleware"
	"github.com/aims-retail/aims-backend/internal/realtime"
	"github.com/aims-retail/aims-backend/internal/service"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Services struct {
	Inventory     *service.InventoryService
	Sales         *service.SalesService
	Notifications *service.NotificationService
	Replenishment *service.ReplenishmentService
	Reorder       *service.ReorderService
	Expiry        *service.ExpiryService
	Discounts     *service.DiscountService
	Defects       *service.DefectService
	Restock       *service.RestockService
	Optimization  *service.OptimizationService
	Analytics     *service.AnalyticsService
	Vision        *service.VisionService
}

func NewRouter(services *Services, hub *realtime.Hub, allowedOrigins []string) *gin.Engine {
	router := gin.New()

	// Add middleware
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.Metrics())
	defaultOrigins := []string{"http://localhost:3000", "http://127.0.0.1:3000"}
	corsConfig := cors.Config{
		AllowOrigins:     defaultOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(allowedOrigins) > 0 {
		normalizedOrigins, allowAll := normalizeAllowedOrigins(allowedOrigins)
		if allowAll {
			corsConfig.AllowOrigins = nil
			corsConfig.AllowOriginFunc = func(origin string) bool { return true }
		} else if len(normalizedOrigins) > 0 {
			corsConfig.AllowOrigins = normalizedOrigins
		}
	}
	router.Use(cors.New(corsConfig))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	if hub != nil {
		router.GET("/ws", gin.WrapH(hub))
	}

	apiGroup := router.Group("/api/v1")

	if services != nil {
		if services.Inventory != nil {
			inventoryHandler := handlers.NewInventoryHandler(services.Inventory)
			inventoryGroup := apiGroup.Group("/inventory")
			{
				inventoryGroup.GET("", inventoryHandler.List)
				inventoryGroup.GET("/:sku", inventoryHandler.Get)
				inventoryGroup.POST("", inventoryHandler.Create)
				inventoryGroup.POST("/bulk-update", inventoryHandler.BulkUpdate)
			}
			apiGroup.POST("/restock", inventoryHandler.ApplyDelivery)
			apiGroup.POST("/simulate-delivery", inventoryHandler.SimulateDelivery)
		}

		if services.Sales != nil {
			salesHandler := handlers.NewSalesHandler(services.Sales)
			salesGroup := apiGroup.Group("/sales")
			{
				salesGroup.GET("", salesHandler.List)
				salesGroup.POST("", salesHandler.Record)
			}
		}

		if services.Notifications != nil {
			notificationHandler := handlers.NewNotificationHandler(services.Notifications)
			notificationGroup := apiGroup.Group("/notifications")
			{
				notificationGroup.GET("", notificationHandler.List)
				notificationGroup.PATCH("/:id", notificationHandler.UpdateStatus)
			}
		}

		if services.Replenishment != nil {
			replenishmentHandler := handlers.NewReplenishmentHandler(services.Replenishment)
			replenishmentGroup := apiGroup.Group("/replenishment")
			{
				replenishmentGroup.GET("", replenishmentHandler.ListPending)
				replenishmentGroup.POST("", replenishmentHandler.Create)
				replenishmentGroup.PATCH("/:id", replenishmentHandler.Settle)
			}
		}

		if services.Reorder != nil {
			reorderHandler := handlers.NewReorderHandler(services.Reorder)
			reorderGroup := apiGroup.Group("/auto-reorder")
			{
				reorderGroup.POST("", reorderHandler.Run)
				reorderGroup.PATCH("/:id", reorderHandler.Resolve)
			}
		}

		if services.Expiry != nil {
			expiryHandler := handlers.NewExpiryHandler(services.Expiry)
			apiGroup.POST("/check-expiry", expiryHandler.Check)
		}

		if services.Discounts != nil {
			discountHandler := handlers.NewDiscountHandler(services.Discounts)
			discountGroup := apiGroup.Group("/discounts")
			{
				discountGroup.GET("", discountHandler.ListActive)
				discountGroup.POST("", discountHandler.Resolve)
			}
		}

		if services.Defects != nil {
			defectHandler := handlers.NewDefectHandler(services.Defects)
			defectGroup := apiGroup.Group("/defects")
			{
				defectGroup.GET("", defectHandler.List)
				defectGroup.POST("", defectHandler.Report)
				defectGroup.PATCH("/:id", defectHandler.Resolve)
			}
		}

		if services.Restock != nil {
			restockHandler := handlers.NewRestockHandler(services.Restock)
			apiGroup.POST("/restock/send", restockHandler.Send)
		}

		if services.Optimization != nil {
			optimizationHandler := handlers.NewOptimizationHandler(services.Optimization)
			optimizeGroup := apiGroup.Group("/optimize")
			{
				optimizeGroup.GET("", optimizationHandler.Plan)
				optimizeGroup.POST("", optimizationHandler.Run)
			}
		}

		if services.Analytics != nil {
			analyticsHandler := handlers.NewAnalyticsHandler(services.Analytics)
			apiGroup.GET("/analytics", analyticsHandler.Overview)
		}

		if services.Vision != nil {
			visionHandler := handlers.NewVisionHandler(services.Vision)
			apiGroup.POST("/vision/detect", visionHandler.Detect)
		}
	}

	return router
}

func normalizeAllowedOrigins(origins []string) ([]string, bool) {
	var (
		parsed   []string
		allowAll bool
	)
	for _, origin := range origins {
		parts := strings.Split(origin, ",")
		for _, part := range parts {
			trimmed := strings.TrimSpace(part)
			if trimmed == "" {
				continue
			}
			if trimmed == "*" {
				allowAll = true
				continue
			}
			parsed = append(parsed, trimmed)
		}
	}
	return parsed, allowAll
}
