package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dmcruz/barberbook/internal/api/router"
	"github.com/dmcruz/barberbook/internal/app/bootstrap"
	appconfig "github.com/dmcruz/barberbook/internal/config"
	"github.com/dmcruz/barberbook/internal/http/handlers"
	"github.com/dmcruz/barberbook/internal/observability/metrics"
	"github.com/dmcruz/barberbook/pkg/logging"
)

func main() {
	// Optional .env for local development; production uses real env vars.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	logger.Info("starting barberbook widget service",
		"env", cfg.Env,
		"port", cfg.Port,
		"booking_base_url", cfg.BookingBaseURL,
	)

	// Metrics registry
	registry := prometheus.NewRegistry()
	widgetMetrics := metrics.NewWidgetMetrics(registry)

	// Redis is optional: without it the precheck simply goes uncached.
	redisClient := bootstrap.BuildRedisClient(context.Background(), cfg, logger, true)
	prechecker, slotSource := bootstrap.BuildAvailability(cfg, redisClient, widgetMetrics, logger)

	widgetHandler := handlers.NewWidgetHandler(prechecker, slotSource, widgetMetrics, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		WidgetHandler:      widgetHandler,
		MetricsHandler:     promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
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

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	if redisClient != nil {
		_ = redisClient.Close()
	}

	logger.Info("server stopped")
}
