package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/mmynk/aequitally/internal/config"
	"github.com/mmynk/aequitally/internal/events"
	"github.com/mmynk/aequitally/internal/metrics"
	"github.com/mmynk/aequitally/internal/server"
	"github.com/mmynk/aequitally/internal/service"
	"github.com/mmynk/aequitally/internal/storage/sqlite"
	"github.com/mmynk/aequitally/pkg/logging"
)

func main() {
	// A missing .env file is fine; the environment still applies
	envErr := godotenv.Load()

	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)
	if envErr != nil {
		slog.Debug("No .env file found, using environment variables")
	}

	if err := cfg.Validate(); err != nil {
		slog.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	if err := run(cfg); err != nil {
		slog.Error("Server failed", "error", err)
		os.Exit(1)
	}
	slog.Info("Server stopped gracefully")
}

func run(cfg *config.Config) error {
	store, err := sqlite.New(cfg.DBPath)
	if err != nil {
		return err
	}
	defer store.Close()
	slog.Info("Storage initialized", "database", cfg.DBPath)

	var publisher events.Publisher = events.NopPublisher{}
	if cfg.AMQPURL != "" {
		p, err := events.NewAMQPPublisher(cfg.AMQPURL, cfg.AMQPExchange)
		if err != nil {
			return err
		}
		publisher = p
		slog.Info("Publishing tally events", "exchange", cfg.AMQPExchange)
	}
	defer publisher.Close()

	m := metrics.New()
	svc := service.NewTallyService(store,
		service.WithPublisher(publisher),
		service.WithMetrics(m),
		service.WithEpsilon(cfg.SettlementEpsilon),
	)

	srv := &http.Server{
		Addr: cfg.Addr(),
		Handler: server.NewRouter(server.Deps{
			Store:   store,
			Service: svc,
			Metrics: m,
			Epsilon: cfg.SettlementEpsilon,
		}),
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 16, // 64KB
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		slog.Info("Connect server starting", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		slog.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
