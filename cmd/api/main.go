// Package main is the entry point for the relocation advisor API server.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/denisok6893-rgb/relocation-advisor/internal/config"
	"github.com/denisok6893-rgb/relocation-advisor/internal/domain"
	httpapi "github.com/denisok6893-rgb/relocation-advisor/internal/http"
	"github.com/denisok6893-rgb/relocation-advisor/internal/middleware"
	"github.com/denisok6893-rgb/relocation-advisor/internal/recommend"
	"github.com/denisok6893-rgb/relocation-advisor/internal/scenario"
	"github.com/denisok6893-rgb/relocation-advisor/internal/storage"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configPath := flag.String("config", "", "path to YAML config file")
	flag.Parse()

	cfg, errs := config.Load(*configPath)
	if len(errs) > 0 {
		for _, err := range errs {
			fmt.Fprintln(os.Stderr, "config:", err)
		}
		os.Exit(1)
	}

	logger := middleware.NewLogger(cfg.Env)
	slog.SetDefault(logger)
	logger.Info("configuration loaded", "config", cfg.LogSummary())

	countries, err := loadCountries(cfg, logger)
	if err != nil {
		logger.Error("load country collection", "error", err)
		os.Exit(1)
	}
	logger.Info("country collection ready", "countries", len(countries))

	var weights recommend.Weights
	if cfg.WeightsPath != "" {
		weights, err = recommend.LoadWeights(cfg.WeightsPath)
		if err != nil {
			logger.Warn("using default weights", "reason", err)
		}
	}

	engine := recommend.NewEngine(countries, weights)

	metrics := middleware.NewMetrics()
	registry := prometheus.NewRegistry()
	if err := metrics.Register(registry); err != nil {
		logger.Error("register metrics", "error", err)
		os.Exit(1)
	}

	server := httpapi.NewServer(engine, scenario.BuiltIn())
	server.Metrics = metrics
	server.Exposition = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})

	handler := middleware.RequestID(
		middleware.Logging(logger)(
			middleware.HTTPMetrics(metrics)(server.Routes()),
		),
	)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("starting server", "port", cfg.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}

// loadCountries resolves the configured data source: a SQLite database
// (seeded on first boot), a JSON or CSV dataset file, or the embedded seed
// collection.
func loadCountries(cfg *config.Config, logger *slog.Logger) ([]domain.Country, error) {
	switch {
	case cfg.DBPath != "":
		store, err := storage.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, err
		}
		defer func() { _ = store.Close() }()

		if err := store.EnsureSchema(); err != nil {
			return nil, err
		}
		seeded, err := store.SeedIfEmpty()
		if err != nil {
			return nil, err
		}
		if seeded {
			logger.Info("seeded empty database", "path", cfg.DBPath)
		}
		return store.ListAllCountries()

	case cfg.DatasetPath != "":
		return storage.LoadDataset(cfg.DatasetPath)

	default:
		return storage.SeedCountries(), nil
	}
}
