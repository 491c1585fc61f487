package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/maheshk/workpulse/internal/api"
	"github.com/maheshk/workpulse/internal/config"
	"github.com/maheshk/workpulse/internal/realtime"
	"github.com/maheshk/workpulse/internal/repository/postgres"
	"github.com/maheshk/workpulse/internal/service"
	"github.com/maheshk/workpulse/internal/storage"
	"github.com/maheshk/workpulse/internal/token"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Initialize repositories
	repos := postgres.NewRepositories(db)

	// Object storage for capture payloads
	objects, err := storage.NewLocalStore(cfg.StorageDir)
	if err != nil {
		log.Fatalf("failed to initialize object storage: %v", err)
	}

	// Realtime capture feed
	hub := realtime.NewHub()
	go hub.Run()

	// Token service and business services
	tokens := token.NewService(cfg)
	services := service.NewServices(repos, tokens, objects, hub)

	// Initialize router
	router := api.NewRouter(services, tokens, repos, hub, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	hub.Stop()
	log.Println("Server stopped")
}
