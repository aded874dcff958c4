package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Greggwolin/landscape-sub003/internal/api"
	"github.com/Greggwolin/landscape-sub003/internal/config"
	"github.com/Greggwolin/landscape-sub003/internal/database"
	"github.com/Greggwolin/landscape-sub003/internal/repository"
	"github.com/Greggwolin/landscape-sub003/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Apply pending schema migrations
	if err := database.Migrate(db); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	// Create repositories
	projectRepo := repository.NewProjectRepository(db)
	tierRepo := repository.NewTierRepository(db)
	cashFlowRepo := repository.NewCashFlowRepository(db)
	materializedRepo := repository.NewMaterializedRepository(db)

	// Create services
	systemService := service.NewSystemService(db)
	projectService := service.NewProjectService(
		projectRepo,
		tierRepo,
	)
	cashFlowService := service.NewCashFlowService(
		projectRepo,
		cashFlowRepo,
	)
	waterfallService := service.NewWaterfallService(
		projectRepo,
		tierRepo,
		cashFlowRepo,
	)
	materializedService := service.NewMaterializedService(
		projectRepo,
		materializedRepo,
		waterfallService,
	)

	// Start the background materialized refresh
	scheduler := service.NewScheduler(materializedService)
	if cfg.Scheduler.RefreshCron != "" {
		if err := scheduler.Start(cfg.Scheduler.RefreshCron); err != nil {
			log.Fatalf("Failed to start scheduler: %v", err)
		}
		log.Printf("Materialized refresh scheduled: %s", cfg.Scheduler.RefreshCron)
	}

	// Create router
	router := api.NewRouter(systemService, projectService, cashFlowService, waterfallService, materializedService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Stop the scheduler before the HTTP server so no refresh is cut off mid-write
	scheduler.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
