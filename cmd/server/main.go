package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/lucasrosa/lembretes-api/internal/api"
	"github.com/lucasrosa/lembretes-api/internal/config"
	"github.com/lucasrosa/lembretes-api/internal/push"
	"github.com/lucasrosa/lembretes-api/internal/repository/postgres"
	"github.com/lucasrosa/lembretes-api/internal/service"
)

func main() {
	// Load .env if present, real env vars take precedence
	_ = godotenv.Load()

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

	// Initialize web push transport
	vapid, err := push.NewVAPID(cfg.VAPIDSubject, cfg.VAPIDPublicKey, cfg.VAPIDPrivateKey)
	if err != nil {
		log.Fatalf("failed to configure web push: %v", err)
	}
	transport := push.NewWebPushTransport(vapid)

	// Initialize services
	services := service.NewServices(repos, transport, cfg)

	// Start the background reminder scanner
	scanCtx, stopScanner := context.WithCancel(context.Background())
	scanner := service.NewScanner(repos.Reminder, services.Notification, cfg.ScanInterval)
	go scanner.Run(scanCtx)

	// Initialize router
	router := api.NewRouter(services, repos, cfg)

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

	stopScanner()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}
