package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/roster-sync/internal/backend"
	"github.com/mauv0809/roster-sync/internal/config"
	"github.com/mauv0809/roster-sync/internal/database"
	"github.com/mauv0809/roster-sync/internal/hashcache"
	"github.com/mauv0809/roster-sync/internal/history"
	server "github.com/mauv0809/roster-sync/internal/http"
	"github.com/mauv0809/roster-sync/internal/metrics"
	"github.com/mauv0809/roster-sync/internal/notifier"
	"github.com/mauv0809/roster-sync/internal/notifier/slack"
	"github.com/mauv0809/roster-sync/internal/processor"
	"github.com/mauv0809/roster-sync/internal/pubsub"
	"github.com/mauv0809/roster-sync/internal/scheduler"
	"github.com/mauv0809/roster-sync/internal/toornament"
	"github.com/mauv0809/roster-sync/internal/weezevent"
)

func main() {
	// Start profiling timer
	startTime := time.Now()
	log.SetFormatter(log.JSONFormatter)
	cfg := config.Load()
	if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
		log.SetLevel(level)
	} else {
		log.Warn("Unknown log level, keeping default", "level", cfg.LogLevel)
	}

	db, dbTeardown, err := database.InitDB(cfg.DBName, cfg.Turso.PrimaryURL, cfg.Turso.AuthToken)
	if err != nil {
		log.Fatalf("Failed to initialize database: %s", err)
	}
	defer func() {
		log.Info("Closing database connection")
		dbTeardown()
	}()

	metricsSvc := metrics.NewService()
	metricsHandler := metrics.NewMetricsHandler()
	store := history.New(db)
	cache := hashcache.New()

	var alerts notifier.Notifier = notifier.Nop{}
	if cfg.Slack.Enabled() {
		alerts = slack.NewNotifier(cfg.Slack.Token, cfg.Slack.ChannelID, metricsSvc)
	} else {
		log.Info("Slack is not configured, publish failures will only be logged")
	}

	var events pubsub.PubSubClient = pubsub.Nop{}
	if cfg.ProjectID != "" {
		events, err = pubsub.New(context.Background(), cfg.ProjectID)
		if err != nil {
			log.Fatalf("Failed to initialize pubsub: %s", err)
		}
	}
	defer events.Close()

	proc := processor.New(
		backend.NewClient(cfg.Backend.URL, cfg.Backend.Token, cfg.HTTPTimeout),
		weezevent.NewClient(cfg.Weezevent.URL, cfg.Weezevent.AccessToken, cfg.Weezevent.APIKey, cfg.HTTPTimeout),
		toornament.NewClient(cfg.Toornament.URL, cfg.Toornament.APIKey, cfg.Toornament.AccessToken, cfg.HTTPTimeout),
		cache,
		store,
		alerts,
		metricsSvc,
		events,
	)

	sched, err := scheduler.New(cfg.SyncInterval, func(ctx context.Context) error {
		_, err := proc.Run(ctx)
		return err
	})
	if err != nil {
		log.Fatalf("Failed to initialize scheduler: %s", err)
	}

	s := server.NewServer(cache, store, sched, metricsHandler)

	// --- Record startup time ---
	startupDuration := time.Since(startTime)
	metricsSvc.SetStartupTime(startupDuration.Seconds())
	log.Info("Startup time recorded", "duration_ms", startupDuration.Milliseconds())

	sched.Start()
	log.Info("Roster sync scheduled", "interval", cfg.SyncInterval)

	// --- Graceful shutdown setup ---
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
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
			log.Error("Server error", "error", err)
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

	if err := sched.Stop(); err != nil {
		log.Error("Scheduler shutdown failed", "error", err)
	}
	log.Info("Server process shutting down")
}
