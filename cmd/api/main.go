package main

import (
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"path/filepath"

	"recallr/internal/ai"
	"recallr/internal/auth"
	"recallr/internal/config"
	"recallr/internal/extract"
	"recallr/internal/handlers"
	"recallr/internal/http"
	"recallr/internal/quota"
	"recallr/internal/service"
	"recallr/internal/storage"
)

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Configure structured logging with configurable level and format
	opts := &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}
	var handler slog.Handler
	if cfg.LogFormat == "json" {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	// Initialize database
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
		log.Fatalf("Failed to create database directory: %v", err)
	}
	db, err := storage.New(cfg.DBPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer func() {
		_ = db.Close()
	}()

	if err := storage.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	slog.Info("Database initialized", "path", cfg.DBPath)

	// Create repository instances
	itemRepo := storage.NewItemRepo(db)
	collectionRepo := storage.NewCollectionRepo(db)
	usageRepo := storage.NewUsageRepo(db)

	// External collaborators: enrichment model client and page fetcher
	fetcher := extract.NewFetcher(cfg.AITimeout)
	aiClient := ai.NewClient(cfg.AIBaseURL, cfg.AIAPIKey, cfg.AIModel, fetcher, cfg.AITimeout)
	if cfg.AIAPIKey == "" {
		slog.Warn("AI_API_KEY is not set; saves will use fallback annotations")
	}

	// Core services
	tracker := quota.NewTracker(usageRepo, cfg.DailyQuota)
	maintainer := service.NewMaintainer(itemRepo, collectionRepo)
	pipeline := service.NewPipeline(itemRepo, maintainer, tracker, aiClient)
	searcher := service.NewSearcher(itemRepo, cfg.SearchLimit)
	collections := service.NewCollectionService(collectionRepo, itemRepo, maintainer)
	reminders := service.NewReminderService(itemRepo)
	chat := service.NewChatService(itemRepo, aiClient, cfg.SearchLimit)
	exporter := service.NewExporter(itemRepo)

	verifier := auth.NewJWTVerifier(cfg.JWTSecret)

	router := http.NewRouter(&http.Deps{
		Verifier:    verifier,
		Health:      handlers.NewHealthHandler(db),
		Save:        handlers.NewSaveHandler(pipeline),
		Search:      handlers.NewSearchHandler(searcher),
		Quota:       handlers.NewQuotaHandler(tracker),
		Items:       handlers.NewItemsHandler(itemRepo, collections),
		Collections: handlers.NewCollectionsHandler(collections),
		Reminders:   handlers.NewRemindersHandler(reminders),
		Export:      handlers.NewExportHandler(exporter),
		Chat:        handlers.NewChatHandler(chat),
	})

	addr := ":" + cfg.APIPort
	slog.Info("API server listening", "addr", addr, "daily_quota", cfg.DailyQuota, "search_limit", cfg.SearchLimit)
	if err := nethttp.ListenAndServe(addr, router); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
