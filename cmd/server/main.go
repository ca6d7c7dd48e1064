package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nguyentantai21042004/audiobook-forge/internal/audio"
	"github.com/nguyentantai21042004/audiobook-forge/internal/config"
	"github.com/nguyentantai21042004/audiobook-forge/internal/export"
	"github.com/nguyentantai21042004/audiobook-forge/internal/flashcards"
	"github.com/nguyentantai21042004/audiobook-forge/internal/job"
	"github.com/nguyentantai21042004/audiobook-forge/internal/logger"
	"github.com/nguyentantai21042004/audiobook-forge/internal/parser"
	"github.com/nguyentantai21042004/audiobook-forge/internal/pipeline"
	"github.com/nguyentantai21042004/audiobook-forge/internal/provider"
	"github.com/nguyentantai21042004/audiobook-forge/internal/server"
	"github.com/nguyentantai21042004/audiobook-forge/internal/storage"
	"github.com/nguyentantai21042004/audiobook-forge/internal/summarizer"
)

const shutdownTimeout = 10 * time.Second

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load(configPath())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	log := logger.New(cfg.Logging.Level)
	log.Info(ctx, "========================================")
	log.Info(ctx, "Audiobook Forge")
	log.Info(ctx, "========================================")
	log.Info(ctx, "Primary AI provider: %s", cfg.Providers.Primary)
	log.Info(ctx, "Max concurrent jobs: %d", cfg.Performance.MaxConcurrentJobs)
	log.Info(ctx, "Configuration loaded successfully")

	// Initialize dependencies
	gateway, err := provider.New(cfg.Providers, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize AI providers: %v", err)
		os.Exit(1)
	}

	store, err := storage.New(cfg.Paths.Uploads, cfg.Paths.Audio, log)
	if err != nil {
		log.Error(ctx, "Failed to initialize storage: %v", err)
		os.Exit(1)
	}
	defer store.Stop()

	jobs := job.NewMemoryStore()

	var exporter export.Exporter
	if cfg.Export.Docx {
		exporter = export.New(cfg.Paths.Audio, log)
	}

	// Create context with cancellation
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	pipe := pipeline.New(ctx, pipeline.Deps{
		Store:       jobs,
		Storage:     store,
		Parser:      parser.New(log),
		Summarizer:  summarizer.New(gateway, cfg.Summarizer, log),
		Synthesizer: audio.New(gateway, log),
		Flashcards:  flashcards.New(gateway, log),
		Exporter:    exporter,
		Logger:      log,
	}, cfg.Performance.MaxConcurrentJobs)

	srv := server.New(server.Deps{
		Store:    jobs,
		Pipeline: pipe,
		Storage:  store,
		Gateway:  gateway,
		AudioDir: cfg.Paths.Audio,
		Logger:   log,
	})

	// Setup graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Start uploads watcher and HTTP server
	go func() {
		if err := store.Start(ctx); err != nil && err != context.Canceled {
			log.Error(ctx, "Uploads watcher error: %v", err)
		}
	}()

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(cfg.Server.Port); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	log.Info(ctx, "========================================")
	log.Info(ctx, "Audiobook Forge is ready!")
	log.Info(ctx, "Listening on port %d", cfg.Server.Port)
	log.Info(ctx, "Uploads: %s", cfg.Paths.Uploads)
	log.Info(ctx, "Audio output: %s", cfg.Paths.Audio)
	log.Info(ctx, "Press Ctrl+C to stop")
	log.Info(ctx, "========================================")

	// Wait for shutdown signal or error
	select {
	case <-sigChan:
		log.Info(ctx, "Shutdown signal received")
	case err := <-errChan:
		log.Error(ctx, "Server error: %v", err)
	}

	// Graceful shutdown
	log.Info(ctx, "Shutting down gracefully...")
	cancel()

	shutdownCtx, stop := context.WithTimeout(context.Background(), shutdownTimeout)
	defer stop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "Server shutdown error: %v", err)
	}

	log.Info(ctx, "Audiobook Forge stopped")
}

func configPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "config.yaml"
}
