package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/fleetpulse/fleetpulse-be/internal/api"
	"github.com/fleetpulse/fleetpulse-be/internal/auth"
	"github.com/fleetpulse/fleetpulse-be/internal/config"
	"github.com/fleetpulse/fleetpulse-be/internal/logger"
	"github.com/fleetpulse/fleetpulse-be/internal/monitoring"
	"github.com/fleetpulse/fleetpulse-be/internal/services"
	"github.com/fleetpulse/fleetpulse-be/internal/storage"
	"github.com/fleetpulse/fleetpulse-be/internal/web"
	"github.com/fleetpulse/fleetpulse-be/internal/websocket"
)

func main() {
	logger.Init()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}
	if cfg.SessionSecret == config.DefaultSessionSecret {
		log.Warn().Msg("SESSION_SECRET not set; using the insecure development default")
	}

	// Set up the user directory over the JSON backing store
	store := storage.NewStore(cfg.DataFile)
	users := services.NewUserDirectory(store)

	// Mock data providers
	fleet := services.NewFleetService(rand.New(rand.NewSource(time.Now().UnixNano())))
	chat := services.NewChatService()
	schedule := services.NewScheduleService()

	// Session access gate
	adminCreds, err := auth.NewAdminCredentials(cfg.AdminUser, cfg.AdminPass)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to prepare admin credentials")
	}
	gate := auth.NewGate(adminCreds, users)
	sessions := auth.NewManager(cfg.SessionSecret, cfg.IsProduction())

	// Views
	views, err := web.NewRenderer()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse templates")
	}

	// Set up WebSocket Hub
	hub := websocket.NewHub()
	go hub.Run()

	// Set up and run the background fleet broadcaster
	broadcaster, err := monitoring.NewFleetBroadcaster(fleet, hub, cfg.TelemetrySchedule)
	if err != nil {
		log.Fatal().Err(err).Str("schedule", cfg.TelemetrySchedule).Msg("Invalid telemetry schedule")
	}
	go broadcaster.Run()

	// Set up router
	router := api.NewRouter(sessions, gate, views, hub, users, fleet, chat, schedule)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.ServerPort),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.ServerPort).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	broadcaster.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}
