package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/openroles/jobfeed/internal/api"
	"github.com/openroles/jobfeed/internal/config"
	"github.com/openroles/jobfeed/internal/feed"
	"github.com/openroles/jobfeed/internal/logger"
	"github.com/openroles/jobfeed/internal/repository"
	"github.com/openroles/jobfeed/internal/service"
	"github.com/openroles/jobfeed/internal/sink"
)

func main() {
	// Load configuration
	// Support CONFIG_PATH environment variable for production deployments
	configPath := os.Getenv("CONFIG_PATH")
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// Initialize logger
	appLogger := logger.New(&logger.Config{
		Level:       cfg.Log.Level,
		Format:      cfg.Log.Format,
		ServiceName: "jobfeed-api",
		Environment: cfg.Log.Environment,
		LogFile:     cfg.Log.File,
	})
	logger.SetDefault(appLogger)

	// Initialize database
	db, err := repository.InitDB(&cfg.Database)
	if err != nil {
		appLogger.WithError(err).Fatal("Failed to initialize database")
	}

	// Initialize repositories
	jobRepo := repository.NewJobRepository(db)
	reviewRepo := repository.NewReviewRepository(db)

	// Initialize services
	chatClient := service.NewChatClient(&service.ChatConfig{
		Model:   cfg.AI.Model,
		APIKey:  cfg.AI.APIKey,
		BaseURL: cfg.AI.BaseURL,
	})
	enricher := service.NewEnricher(chatClient, &service.EnrichConfig{
		ClassifyTimeout:    cfg.AI.ClassifyTimeout,
		AttributesTimeout:  cfg.AI.AttributesTimeout,
		BatchSize:          cfg.AI.ClassifyBatchSize,
		DefaultConfidence:  cfg.AI.DefaultConfidence,
		FallbackConfidence: cfg.AI.FallbackConfidence,
	}, appLogger)

	publisher := sink.NewPublishClient(&sink.PublishConfig{
		APIURL: cfg.Publish.APIURL,
		APIKey: cfg.Publish.APIKey,
	})
	confidenceRouter := service.NewRouter(publisher, reviewRepo, cfg.Pipeline.ConfidenceThreshold, appLogger)

	pipeline := service.NewPipeline(
		feed.NewProcessor(appLogger),
		jobRepo,
		enricher,
		confidenceRouter,
		&service.PipelineConfig{FeedID: cfg.Pipeline.FeedID},
		appLogger,
	)

	// Setup router
	router := api.SetupRouter(db, pipeline, jobRepo, reviewRepo, cfg)

	// Create HTTP server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		appLogger.WithFields(logger.Fields{
			"port": cfg.Server.Port,
			"mode": cfg.Server.Mode,
		}).Info("Starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.WithError(err).Fatal("Failed to start server")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.WithError(err).Fatal("Server forced to shutdown")
	}

	appLogger.Info("Server exited")
}
