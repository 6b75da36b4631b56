package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flag"

	"log/slog"

	"github.com/tecnitrama/backend/api"
	embedded "github.com/tecnitrama/backend/db"
	"github.com/tecnitrama/backend/internal/config"
	"github.com/tecnitrama/backend/internal/db"
	"github.com/tecnitrama/backend/internal/metrics"
	"github.com/tecnitrama/backend/internal/repository/sqlite"
	"github.com/tecnitrama/backend/internal/search"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	var configPath = flag.String("config", "", "Path to config YAML file")
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	api.SetLogger(logger)

	log.Printf("Starting TecniTrama server version %s (built at %s)", version, buildTime)

	ctx := context.Background()

	// Open database connection and apply migrations + lookup seeds
	conn, err := db.New(ctx, cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	if err := db.Migrate(ctx, conn, embedded.Migrations, embedded.SeedFiles); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	metrics.Register()

	index, err := search.New(ctx, cfg.ElasticAddr, cfg.ElasticIndex, logger)
	if err != nil {
		// search is optional; run without it
		logger.Error("search index unavailable", slog.Any("err", err))
		index = nil
	}

	repo := sqlite.New(conn, logger)
	handler := api.SetupRoutes(cfg, version, buildTime, repo, index)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler,
		ReadTimeout:  cfg.APITimeout,
		WriteTimeout: cfg.APITimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on %s", cfg.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	// Close database connection
	if err := conn.Close(); err != nil {
		log.Printf("Error closing DB: %v", err)
	}

	log.Println("Server exited")
}
