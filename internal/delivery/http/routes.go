package http

import (
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/proteinscan/backend/config"
)

// SetupRouter creates and configures the Gin router
func SetupRouter(cfg *config.Config, handler *Handler) *gin.Engine {
	// Set Gin mode based on environment
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(RecoveryMiddleware())
	router.Use(LoggerMiddleware())
	router.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	// Health check endpoint
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		v1.GET("/products/:barcode", handler.GetProduct)
		v1.GET("/search", handler.SearchProduct)

		scan := v1.Group("/scan")
		{
			scan.POST("/sessions", handler.StartScanSession)
			scan.POST("/sessions/:id/decoded", handler.ScanDecoded)
			scan.POST("/sessions/:id/failed", handler.ScanFailed)
			scan.DELETE("/sessions/:id", handler.CancelScanSession)
		}

		session := v1.Group("/session")
		{
			session.GET("", handler.GetSession)
			session.POST("/back", handler.Back)
			session.POST("/history", handler.OpenHistory)
			session.POST("/history/select", handler.SelectHistory)
			session.POST("/connectivity", handler.SetConnectivity)
			session.POST("/installability", handler.SetInstallability)
		}

		v1.GET("/history", handler.GetHistory)
	}

	// PWA shell static assets
	if dir := cfg.Server.StaticDir; dir != "" {
		router.StaticFile("/", filepath.Join(dir, "index.html"))
		router.StaticFile("/index.html", filepath.Join(dir, "index.html"))
		router.StaticFile("/app.js", filepath.Join(dir, "app.js"))
		router.StaticFile("/manifest.json", filepath.Join(dir, "manifest.json"))
		router.StaticFile("/service-worker.js", filepath.Join(dir, "service-worker.js"))
		router.StaticFile("/offline.html", filepath.Join(dir, "offline.html"))
		router.StaticFile("/icon-192.png", filepath.Join(dir, "icon-192.png"))
		router.StaticFile("/icon-512.png", filepath.Join(dir, "icon-512.png"))
	}

	return router
}
