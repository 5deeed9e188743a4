// Sleep Monitor API
//
// REST API serving aggregated biometric sleep quality reports.
//
//	@title			Sleep Monitor API
//	@version		1.0
//	@description	Aggregated biometric sleep quality reports for a multi-subject monitoring study.
//
//	@BasePath	/v1
//
//	@tag.name			report
//	@tag.description	Aggregate report endpoints
//
//	@tag.name			records
//	@tag.description	Raw feed record access
//
//	@tag.name			responses
//	@tag.description	Subjective session responses
//
//	@tag.name			insights
//	@tag.description	LLM-generated insights
package main

import (
	"context"
	"log"
	"net/http"

	"github.com/blaisecz/sleep-monitor/internal/api"
	"github.com/blaisecz/sleep-monitor/internal/api/handler"
	"github.com/blaisecz/sleep-monitor/internal/config"
	"github.com/blaisecz/sleep-monitor/internal/domain"
	"github.com/blaisecz/sleep-monitor/internal/llm"
	"github.com/blaisecz/sleep-monitor/internal/processed"
	"github.com/blaisecz/sleep-monitor/internal/repository"
	"github.com/blaisecz/sleep-monitor/internal/seed"
	"github.com/blaisecz/sleep-monitor/internal/service"
	"github.com/blaisecz/sleep-monitor/internal/telemetry"
	"github.com/blaisecz/sleep-monitor/internal/thingspeak"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize tracing (no-op without Langfuse credentials)
	shutdownTracer, err := telemetry.InitTracer(ctx, cfg, "sleep-monitor-api")
	if err != nil {
		log.Fatalf("Failed to initialize tracing: %v", err)
	}
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("Tracer shutdown failed: %v", err)
		}
	}()

	// Connect to database
	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Auto-migrate database schema
	if err := db.AutoMigrate(&domain.SessionResponse{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
	log.Println("Database migration completed")

	if cfg.Seed {
		log.Println("Seeding database with sample data (SEED=true)...")
		if err := seed.Run(db, cfg.SubjectIDs(), cfg.NapSessions); err != nil {
			log.Fatalf("Failed to seed database: %v", err)
		}
	}

	// Initialize repositories
	responseRepo := repository.NewSessionResponseRepository(db)

	// Initialize feed sources
	feedClient := thingspeak.NewClient(cfg.FeedBaseURL, cfg.ChannelID, cfg.ReadAPIKey, cfg.ChannelName)
	processedClient := processed.NewClient(cfg.ProcessedAPIBase)

	// Initialize services
	reportService := service.NewReportService(
		feedClient,
		processedClient,
		responseRepo,
		cfg.FieldMapping,
		cfg.SubjectIDs(),
		cfg.NapSessions,
		cfg.ResultsLimit,
	)
	responseService := service.NewResponseService(responseRepo, cfg.SubjectIDs(), cfg.NapSessions)

	// Initialize OpenAI client (may be nil if not configured)
	openaiClient := llm.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIInsightsModel)
	if openaiClient == nil {
		log.Println("Warning: OpenAI API key not configured, insights endpoint will be unavailable")
	}
	insightsService := service.NewInsightsService(reportService, openaiClient)

	// Optional background polling
	if cfg.PollInterval > 0 {
		poller := thingspeak.NewPoller(feedClient, cfg.PollInterval, cfg.ResultsLimit, func(records []domain.FeedRecord) {
			if _, err := reportService.Refresh(ctx); err != nil {
				log.Printf("Background refresh failed: %v", err)
			}
		})
		poller.Start(ctx)
		defer poller.Stop()
		log.Printf("Polling feed every %s", cfg.PollInterval)
	}

	// Initialize handlers
	reportHandler := handler.NewReportHandler(reportService)
	responseHandler := handler.NewResponseHandler(responseService)
	insightsHandler := handler.NewInsightsHandler(insightsService)

	// Setup router
	router := api.NewRouter(reportHandler, responseHandler, insightsHandler)
	routerHandler := router.Setup()

	// Start server
	addr := ":" + cfg.Port
	log.Printf("Starting server on %s", addr)
	if err := http.ListenAndServe(addr, routerHandler); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
