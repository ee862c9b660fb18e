package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/lumiere-clinic/booking-assistant/internal/api/router"
	"github.com/lumiere-clinic/booking-assistant/internal/appointments"
	"github.com/lumiere-clinic/booking-assistant/internal/availability"
	"github.com/lumiere-clinic/booking-assistant/internal/booking"
	"github.com/lumiere-clinic/booking-assistant/internal/calendar"
	"github.com/lumiere-clinic/booking-assistant/internal/config"
	"github.com/lumiere-clinic/booking-assistant/internal/http/handlers"
	"github.com/lumiere-clinic/booking-assistant/internal/observability/metrics"
	"github.com/lumiere-clinic/booking-assistant/internal/schedule"
	"github.com/lumiere-clinic/booking-assistant/internal/session"
	"github.com/lumiere-clinic/booking-assistant/internal/treatments"
	"github.com/lumiere-clinic/booking-assistant/pkg/logging"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting booking-assistant API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	tz, err := time.LoadLocation(cfg.ClinicTimezone)
	if err != nil {
		logger.Error("invalid clinic timezone", "tz", cfg.ClinicTimezone, "error", err)
		os.Exit(1)
	}

	hours, err := workingHours(cfg)
	if err != nil {
		logger.Error("invalid workday bounds", "error", err)
		os.Exit(1)
	}

	roster, err := availability.ParseRoster(cfg.DoctorsJSON)
	if err != nil {
		logger.Error("failed to parse doctor roster", "error", err)
		os.Exit(1)
	}

	catalog, err := treatments.Load(cfg.TreatmentsPath)
	if err != nil {
		// The fallback duration table still covers the core services.
		logger.Warn("treatment catalog unavailable, using fallback durations",
			"path", cfg.TreatmentsPath, "error", err)
		catalog = treatments.Empty()
	}

	ctx := context.Background()

	calendarClient, err := calendar.NewGoogleClient(ctx, cfg.GoogleCredentialsPath, logger)
	if err != nil {
		logger.Error("failed to init calendar client", "error", err)
		os.Exit(1)
	}

	sheetSource, err := appointments.NewSheetSource(ctx, cfg.GoogleCredentialsPath, cfg.SpreadsheetID, cfg.WorksheetRange, logger)
	if err != nil {
		logger.Error("failed to init sheet source", "error", err)
		os.Exit(1)
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	bookingMetrics := metrics.NewBookingMetrics(registry)

	// Initialize services
	availabilitySvc := availability.NewService(roster, calendarClient, hours, tz, logger, bookingMetrics)
	orchestrator := booking.NewOrchestrator(cfg.BookWebhookURL, cfg.ManageWebhookURL, cfg.WebhookTimeout, tz, logger, bookingMetrics)
	lookup := appointments.NewLookup(sheetSource, calendarClient, tz, logger)
	sessions := session.NewStore(session.DefaultTTL)

	api := handlers.New(availabilitySvc, orchestrator, lookup, catalog, sessions, tz, logger)

	// Setup router
	r := router.New(&router.Config{
		Logger:         logger,
		API:            api,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr, "doctors", roster.Names())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

func workingHours(cfg *config.Config) (schedule.WorkingHours, error) {
	start, err := schedule.ParseClock(cfg.WorkdayStart)
	if err != nil {
		return schedule.WorkingHours{}, err
	}
	end, err := schedule.ParseClock(cfg.WorkdayEnd)
	if err != nil {
		return schedule.WorkingHours{}, err
	}
	return schedule.WorkingHours{Start: start, End: end}, nil
}
