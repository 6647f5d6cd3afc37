package main

import (
	"fmt"
	"log"
	"os"

	"github.com/skinpro/backend/config"
	"github.com/skinpro/backend/internal/catalog"
	httpDelivery "github.com/skinpro/backend/internal/delivery/http"
	"github.com/skinpro/backend/internal/domain"
	"github.com/skinpro/backend/internal/infrastructure/cache"
	"github.com/skinpro/backend/internal/infrastructure/summarizer"
	"github.com/skinpro/backend/internal/usecase"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	log.Printf("Starting SkinPro Backend v1.0.0")
	log.Printf("Environment: %s", cfg.Server.Environment)
	log.Printf("Port: %s", cfg.Server.Port)

	// Load the catalog once; a broken catalog must not start the server
	productCatalog, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}

	// Initialize infrastructure dependencies
	summaryCache := cache.NewMemoryCache()
	log.Printf("Summary cache TTL: %s", cfg.Cache.TTL)

	var reviewSummarizer domain.Summarizer
	if cfg.Summarizer.APIKey != "" {
		client := summarizer.NewClient(summarizer.ClientConfig{
			APIKey:        cfg.Summarizer.APIKey,
			BaseURL:       cfg.Summarizer.BaseURL,
			Timeout:       cfg.Summarizer.Timeout,
			MaxInputChars: cfg.Summarizer.MaxInputChars,
			ExcerptLength: cfg.Summarizer.ExcerptLength,
			Retry: summarizer.RetryPolicy{
				MaxAttempts: cfg.Summarizer.MaxRetries,
				Delay:       cfg.Summarizer.RetryDelay,
			},
		})
		if cfg.Server.Environment == "development" {
			client.SetDebug(true)
			log.Printf("Summarizer client debug mode enabled")
		}
		log.Printf("Summarization backend configured: %s (key: %s...)",
			cfg.Summarizer.BaseURL, cfg.Summarizer.APIKey[:min(8, len(cfg.Summarizer.APIKey))])
		reviewSummarizer = client
	} else {
		log.Printf("WARNING: no summarizer API key configured - falling back to review excerpts")
		reviewSummarizer = summarizer.NewExcerptSummarizer(cfg.Summarizer.ExcerptLength)
	}

	// Initialize usecase layer
	recommendService := usecase.NewRecommendService(
		productCatalog,
		reviewSummarizer,
		summaryCache,
		usecase.RecommendServiceConfig{
			DefaultTopN:        cfg.Recommend.DefaultTopN,
			MaxTopN:            cfg.Recommend.MaxTopN,
			SummaryWorkers:     cfg.Recommend.SummaryWorkers,
			CacheTTL:           cfg.Cache.TTL,
			EnableDebugLogging: cfg.Recommend.EnableDebugLogging,
		},
	)

	log.Printf("Recommend: default_top_n=%d, max_top_n=%d, summary_workers=%d",
		cfg.Recommend.DefaultTopN, cfg.Recommend.MaxTopN, cfg.Recommend.SummaryWorkers)

	// Create HTTP handler with dependencies
	handler := httpDelivery.NewHandler(recommendService, productCatalog, cfg.Server.RequestTimeout)

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
