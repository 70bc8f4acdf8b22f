package main

import (
	"fmt"
	"log"
	"os"

	"github.com/proteinscan/backend/config"
	httpDelivery "github.com/proteinscan/backend/internal/delivery/http"
	"github.com/proteinscan/backend/internal/domain"
	"github.com/proteinscan/backend/internal/infrastructure/cache"
	"github.com/proteinscan/backend/internal/infrastructure/openfoodfacts"
	"github.com/proteinscan/backend/internal/infrastructure/scanner"
	"github.com/proteinscan/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting ProteinScan Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Cache TTL: %s", cfg.Cache.TTL)

	// Initialize infrastructure dependencies
	memoryCache := cache.NewMemoryCache()
	defer memoryCache.Close()

	offClient := openfoodfacts.NewClient(openfoodfacts.ClientOptions{
		BaseURL:          cfg.OFF.BaseURL,
		UserAgent:        cfg.OFF.UserAgent,
		Timeout:          cfg.OFF.Timeout,
		ProductPerMinute: cfg.RateLimit.ProductPerMinute,
		SearchPerMinute:  cfg.RateLimit.SearchPerMinute,
	})

	// Enable debug mode in development environment
	if cfg.Server.Environment == "development" {
		offClient.SetDebug(true)
		log.Printf("Open Food Facts client debug mode enabled")
	}
	log.Printf("Food database: %s (product %d/min, search %d/min)",
		cfg.OFF.BaseURL, cfg.RateLimit.ProductPerMinute, cfg.RateLimit.SearchPerMinute)

	// Initialize usecase layer
	productService := usecase.NewProductService(
		memoryCache,
		offClient,
		usecase.ProductServiceConfig{
			CacheTTL: cfg.Cache.TTL,
		},
	)

	scanManager := usecase.NewScanManager(
		productService,
		scanner.NewRemoteCamera(),
		func() domain.BarcodeDecoder { return scanner.NewRemoteDecoder() },
	)

	viewSession := usecase.NewViewSession()

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(productService, scanManager, viewSession)

	// Setup router
	router := httpDelivery.SetupRouter(cfg, handler)

	// Start server
	addr := fmt.Sprintf(":%s", cfg.Server.Port)
	log.Printf("Server listening on %s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

func init() {
	// Set log flags for better debugging
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)
	log.SetOutput(os.Stdout)
}
