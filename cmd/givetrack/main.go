package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"givetrack/internal/config"
	"givetrack/internal/events"
	apphttp "givetrack/internal/http"
	"givetrack/internal/ledger"
	applog "givetrack/internal/log"
	"givetrack/internal/snapshot"
	"givetrack/internal/storage"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig())
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	snap, cleanup, err := openSnapshotter(cfg)
	if err != nil {
		logger.Error("Failed to initialize persistence backend", "error", err, "backend", cfg.DataBackend)
		os.Exit(1)
	}
	if cleanup != nil {
		defer cleanup()
	}
	logger.Info("Initialized persistence backend", "backend", cfg.DataBackend)

	// Event publishing is optional; the site runs fine without a broker.
	var ev *events.Client
	if cfg.AMQPURL != "" {
		ev, err = events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer ev.Close()
		logger.Info("AMQP events enabled", "exchange", cfg.AMQPExchange)
	} else {
		logger.Info("AMQP events disabled - no AMQP_URL provided")
	}

	var srv *apphttp.Server
	store := ledger.New(ctx, snap, ledger.WithMutateHook(func() {
		if srv != nil {
			srv.InvalidateCaches()
		}
	}))

	srv = apphttp.NewServer(":"+cfg.Port, store, ev, apphttp.Options{
		SubmitDelay:        cfg.SubmitDelay,
		RateLimitPerMinute: cfg.RateLimitPerMinute,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 15 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16 // 64KB

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting givetrack server", "port", cfg.Port, "backend", cfg.DataBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}
	logger.Info("Server stopped gracefully")
}

// openSnapshotter builds the configured persistence backend. The returned
// cleanup closes backend resources and may be nil.
func openSnapshotter(cfg *config.Config) (ledger.Snapshotter, func(), error) {
	switch cfg.DataBackend {
	case "sqlite":
		slots, err := storage.NewSQLiteSlots(cfg.SQLiteDBPath)
		if err != nil {
			return nil, nil, err
		}
		return slots, func() { _ = slots.Close() }, nil
	case "memory":
		return snapshot.NewMemory(), nil, nil
	default:
		fs, err := snapshot.NewFileStore(cfg.DataDir)
		if err != nil {
			return nil, nil, err
		}
		return fs, nil, nil
	}
}
