// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/your-org/manufacturing-backend/internal/config"
	"github.com/your-org/manufacturing-backend/internal/domain/inventory"
	"github.com/your-org/manufacturing-backend/internal/interfaces/http/handlers"
	"github.com/your-org/manufacturing-backend/internal/interfaces/http/middleware"
	"gorm.io/gorm"
)

// SetupRoutes wires every endpoint group onto the API router
func SetupRoutes(rg *gin.RouterGroup, db *gorm.DB, inv *inventory.Service, cfg *config.Config) {
	SetupAuthRoutes(rg, db, cfg)
	SetupStockRoutes(rg, inv, cfg)
	SetupOrderRoutes(rg, inv, cfg)
	SetupChargingRoutes(rg, inv, cfg)
	SetupShipmentRoutes(rg, inv, cfg)
	SetupReportRoutes(rg, inv, cfg)
	SetupLogRoutes(rg, inv, cfg)
}

// SetupAuthRoutes sets up authentication related routes
func SetupAuthRoutes(rg *gin.RouterGroup, db *gorm.DB, cfg *config.Config) {
	authHandler := handlers.NewAuthHandler(db, cfg)

	auth := rg.Group("/auth")
	{
		// Public auth endpoints
		auth.POST("/register", authHandler.Register)
		auth.POST("/login", authHandler.Login)
		auth.POST("/refresh", authHandler.RefreshToken)

		// Protected auth endpoints
		protected := auth.Group("")
		protected.Use(middleware.AuthMiddleware(cfg))
		{
			protected.GET("/profile", authHandler.GetProfile)
			protected.PUT("/profile", authHandler.UpdateProfile)
		}
	}
}

// SetupStockRoutes sets up stock tier routes
func SetupStockRoutes(rg *gin.RouterGroup, inv *inventory.Service, cfg *config.Config) {
	stockHandler := handlers.NewStockHandler(inv, cfg)

	stock := rg.Group("/stock")
	stock.Use(middleware.AuthMiddleware(cfg))
	{
		stock.GET("", stockHandler.GetStock)

		// Catalog changes are admin only
		admin := stock.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.POST("/products", stockHandler.AddProduct)
			admin.PUT("/products/:productId/threshold", stockHandler.UpdateThreshold)
			admin.POST("/initialize", stockHandler.InitializeDocument)
		}
	}
}

// SetupOrderRoutes sets up production and assembly order routes
func SetupOrderRoutes(rg *gin.RouterGroup, inv *inventory.Service, cfg *config.Config) {
	orderHandler := handlers.NewOrderHandler(inv, cfg)

	orders := rg.Group("/orders")
	orders.Use(middleware.AuthMiddleware(cfg))
	{
		orders.GET("", orderHandler.ListOrders)
		orders.POST("/predict", orderHandler.PredictOutput)
		orders.POST("/start", orderHandler.StartOrder)
		orders.POST("/complete", orderHandler.CompleteOrder)
	}
}

// SetupChargingRoutes sets up charging circuit routes
func SetupChargingRoutes(rg *gin.RouterGroup, inv *inventory.Service, cfg *config.Config) {
	chargingHandler := handlers.NewChargingHandler(inv, cfg)

	charging := rg.Group("/charging")
	charging.Use(middleware.AuthMiddleware(cfg))
	{
		charging.GET("/circuits", chargingHandler.ListCircuits)
		charging.PUT("/circuits/:circuitNo", chargingHandler.EditCircuit)
		charging.GET("/orders", chargingHandler.ListChargingOrders)
	}
}

// SetupShipmentRoutes sets up outbound shipment routes
func SetupShipmentRoutes(rg *gin.RouterGroup, inv *inventory.Service, cfg *config.Config) {
	shipmentHandler := handlers.NewShipmentHandler(inv, cfg)

	shipments := rg.Group("/shipments")
	shipments.Use(middleware.AuthMiddleware(cfg))
	{
		shipments.GET("", shipmentHandler.ListShipments)
		shipments.POST("", shipmentHandler.CreateShipment)
		shipments.PUT("/:id/status", shipmentHandler.UpdateShipmentStatus)
		shipments.DELETE("/:id", shipmentHandler.DeleteShipment)
	}
}

// SetupReportRoutes sets up analytics and report routes
func SetupReportRoutes(rg *gin.RouterGroup, inv *inventory.Service, cfg *config.Config) {
	reportsHandler := handlers.NewReportsHandler(inv, cfg)

	reports := rg.Group("/reports")
	reports.Use(middleware.AuthMiddleware(cfg))
	{
		reports.GET("/summary", reportsHandler.GetSummary)
		reports.GET("/discrepancies", reportsHandler.GetDiscrepancies)

		// PDF downloads are admin only
		admin := reports.Group("")
		admin.Use(middleware.AdminMiddleware())
		{
			admin.GET("/production/pdf", reportsHandler.DownloadProductionReport)
			admin.GET("/shipments/pdf", reportsHandler.DownloadShipmentManifest)
		}
	}
}

// SetupLogRoutes sets up audit log routes
func SetupLogRoutes(rg *gin.RouterGroup, inv *inventory.Service, cfg *config.Config) {
	logsHandler := handlers.NewLogsHandler(inv, cfg)

	logs := rg.Group("/logs")
	logs.Use(middleware.AuthMiddleware(cfg))
	{
		logs.GET("", logsHandler.ListLogs)
	}
}
