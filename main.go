package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"

	"github.com/mkrogh/boldklub/internal/config"
	server "github.com/mkrogh/boldklub/internal/http"
	"github.com/mkrogh/boldklub/internal/metrics"
	"github.com/mkrogh/boldklub/internal/notifier/slack"
	"github.com/mkrogh/boldklub/internal/repository"
	"github.com/mkrogh/boldklub/internal/service"
	"github.com/mkrogh/boldklub/internal/strapi"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	storeClient := strapi.NewClient(cfg.Strapi.BaseURL, cfg.Strapi.APIToken, metricsSvc)
	notifier := slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)

	// The factory rebuilds the service bundle around a request-scoped client
	// when a caller brings its own bearer token.
	factory := func(client strapi.Client) *server.Services {
		return &server.Services{
			Auth:         service.NewAuthService(repository.NewUserRepository(client)),
			MatchResults: service.NewMatchResultService(repository.NewMatchResultRepository(client), notifier, metricsSvc),
			Events:       service.NewEventService(repository.NewEventRepository(client), notifier, metricsSvc),
			Tournaments:  service.NewTournamentService(repository.NewTournamentRepository(client), repository.NewTournamentMatchRepository(client), notifier, metricsSvc),
			Comments:     service.NewCommentService(repository.NewCommentRepository(client), notifier),
		}
	}

	s := server.NewServer(cfg, storeClient, metricsSvc, metricsHandler, factory)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: s,
	}

	// Channel to listen for errors coming from the server
	serverErrors := make(chan error, 1)

	// Start the server in a goroutine
	go func() {
		log.Info("Server started", "port", cfg.Port)
		serverErrors <- srv.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	case sig := <-shutdown:
		log.Info("Shutdown signal received", "signal", sig)

		// Create a context with a timeout for the shutdown.
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		// Attempt to gracefully shut down the server.
		if err := srv.Shutdown(ctx); err != nil {
			log.Error("Server shutdown failed", "error", err)
		} else {
			log.Info("Server gracefully stopped")
		}
	}

	log.Info("Server process shutting down")
}
