// Package main is the entry point for the room booking server.
package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/room-booking/backend/internal/api"
	"github.com/room-booking/backend/internal/api/middleware"
	"github.com/room-booking/backend/internal/booking"
	"github.com/room-booking/backend/internal/config"
	"github.com/room-booking/backend/internal/session"
	"github.com/room-booking/backend/internal/storage"
	"github.com/room-booking/backend/internal/websocket"
)

// version is set at build time via -ldflags "-X main.version=x.y.z".
// Defaults to "dev" when not provided.
var version = "dev"

func main() {
	configPath := flag.String("config", "./config.yaml", "Path to the YAML configuration file")
	addr := flag.String("addr", "", "HTTP server address (overrides config)")
	healthCheck := flag.Bool("health-check", false, "Run health check and exit")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if *addr != "" {
		cfg.Listen = *addr
	}

	// Health check mode for Docker HEALTHCHECK
	if *healthCheck {
		if err := runHealthCheck(cfg.Listen); err != nil {
			log.Fatalf("Health check failed: %v", err)
		}
		os.Exit(0)
	}

	if envVer := os.Getenv("VERSION"); envVer != "" {
		version = envVer
	}

	log.Printf("Starting room booking server (version: %s)...", version)

	// Initialize database
	db, err := storage.NewDB(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	if err := storage.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations complete")

	// Initialize WebSocket hub and broadcaster
	hub := websocket.NewHub()
	go hub.Run()
	broadcaster := websocket.NewEventBroadcaster(hub)

	// Initialize repositories and services
	bookingRepo := storage.NewBookingRepository(db)
	feedbackRepo := storage.NewFeedbackRepository(db)
	service := booking.NewService(bookingRepo, broadcaster, cfg.Locations)

	// Authentication: static token table fronted by a TTL session cache
	cache := session.NewCache(cfg.SessionTTL.Std(), session.RealClock{})
	tokens := make(map[string]session.User, len(cfg.Tokens))
	for _, t := range cfg.Tokens {
		tokens[t.Token] = session.User{ID: t.ID, Name: t.Name, Email: t.Email, Role: t.Role}
	}
	authenticator := middleware.NewAuthenticator(cache, tokens)

	// Start the reminder sweep
	reminders := booking.NewReminderScheduler(bookingRepo, broadcaster, cfg.ReminderCron, cfg.ReminderLead.Std())
	if err := reminders.Start(); err != nil {
		log.Printf("Warning: Failed to start reminder scheduler: %v", err)
	}

	router := api.NewRouter(api.Deps{
		DB:            db,
		BookingRepo:   bookingRepo,
		FeedbackRepo:  feedbackRepo,
		Service:       service,
		Hub:           hub,
		Authenticator: authenticator,
		LaneCount:     cfg.LaneCount,
	})

	server := &http.Server{
		Addr:         cfg.Listen,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in background
	go func() {
		log.Printf("Server listening on %s", cfg.Listen)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	reminders.Stop()

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server shutdown error: %v", err)
	}

	log.Println("Server stopped")
}

// runHealthCheck performs a health check against the running server.
func runHealthCheck(addr string) error {
	url := "http://localhost" + addr + "/api/health"
	resp, err := http.Get(url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return http.ErrAbortHandler
	}
	return nil
}
