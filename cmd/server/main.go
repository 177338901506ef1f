package main

import (
	"fmt"
	"log"
	"os"

	"github.com/koshyk-app/backend/config"
	httpDelivery "github.com/koshyk-app/backend/internal/delivery/http"
	"github.com/koshyk-app/backend/internal/domain"
	"github.com/koshyk-app/backend/internal/infrastructure/catalogstore"
	"github.com/koshyk-app/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting Koshyk Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)
	log.Printf("Catalog: %s (cache TTL %s)", cfg.Catalog.DataDir, cfg.Catalog.CacheTTL)

	// Initialize infrastructure dependencies
	store := catalogstore.NewFileStore(cfg.Catalog.DataDir, cfg.Catalog.CacheTTL)
	shops := domain.DefaultShops()

	if saved, err := store.Shops(); err == nil {
		log.Printf("Catalog holds runs for %d shops", len(saved))
	}

	// Initialize usecase layer
	basketService := usecase.NewBasketService(store, shops, usecase.BasketConfig{
		EnableDebugLogging: cfg.Basket.EnableDebugLogging,
	})

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(basketService, shops)

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
