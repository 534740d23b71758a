package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"givetrack/internal/config"
	"givetrack/internal/events"
	applog "givetrack/internal/log"
)

// givetrack-worker consumes ledger events from the broker and emits
// notifications. Today that means structured log lines an operator can ship
// wherever they like; an email or push integration slots in behind the same
// handler.
func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.DefaultConfig()).WithComponent("worker")
	applog.SetDefault(logger)

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}

	client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to initialize AMQP client", "error", err)
		os.Exit(1)
	}
	defer client.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Starting givetrack-worker", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)

	err = client.Consume(ctx, func(routingKey string, body []byte) error {
		switch routingKey {
		case events.DonationCreated:
			return handleDonation(logger, body)
		case events.TestimonialCreated:
			return handleTestimonial(logger, body)
		default:
			logger.Warn("Unknown routing key, dropping message", "routing_key", routingKey)
			return nil
		}
	})
	if err != nil && ctx.Err() == nil {
		logger.Error("Message consumption failed", "error", err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}

func handleDonation(logger *applog.Logger, body []byte) error {
	e, err := events.DonationEventFromJSON(body)
	if err != nil {
		return fmt.Errorf("decode donation event: %w", err)
	}
	logger.Info("Notification: new donation",
		"id", e.ID,
		"amount", e.Amount,
		"category_id", e.CategoryID,
		"anonymous", e.Anonymous,
		"timestamp", e.Timestamp)
	return nil
}

func handleTestimonial(logger *applog.Logger, body []byte) error {
	e, err := events.TestimonialEventFromJSON(body)
	if err != nil {
		return fmt.Errorf("decode testimonial event: %w", err)
	}
	logger.Info("Notification: new testimonial", "id", e.ID, "role", e.Role, "timestamp", e.Timestamp)
	return nil
}
