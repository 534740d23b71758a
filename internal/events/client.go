// Package events publishes and consumes ledger events over AMQP. The
// publisher is strictly optional: the site records donations whether or not
// a broker is reachable, so every caller must treat a nil *Client as "events
// disabled".
package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/rabbitmq/amqp091-go"

	"givetrack/internal/core"
)

type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
}

func NewClient(url, exchangeName, queueName string) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	client := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
	}

	if err := client.setup(); err != nil {
		client.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}

	return client, nil
}

func (c *Client) setup() error {
	err := c.channel.ExchangeDeclare(
		c.exchangeName,
		"direct",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	_, err = c.channel.QueueDeclare(
		c.queueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}

	// Both event kinds land on the one notification queue.
	for _, key := range []string{DonationCreated, TestimonialCreated} {
		if err := c.channel.QueueBind(c.queueName, key, c.exchangeName, false, nil); err != nil {
			return fmt.Errorf("bind queue for %s: %w", key, err)
		}
	}

	return nil
}

// PublishDonationCreated announces a donation. Transient broker hiccups are
// retried with exponential backoff inside a short overall deadline; the
// submission path has already succeeded by the time this runs.
func (c *Client) PublishDonationCreated(ctx context.Context, d core.Donation) error {
	e := &DonationEvent{
		ID:         d.ID,
		Amount:     int64(d.Amount),
		CategoryID: d.CategoryID,
		Anonymous:  d.Anonymous,
		Timestamp:  d.Date,
	}
	body, err := e.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := c.publish(ctx, DonationCreated, body); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Published donation event",
		"id", e.ID,
		"amount", e.Amount,
		"exchange", c.exchangeName)
	return nil
}

// PublishTestimonialCreated announces a testimonial.
func (c *Client) PublishTestimonialCreated(ctx context.Context, tm core.Testimonial) error {
	e := &TestimonialEvent{ID: tm.ID, Role: string(tm.Role), Timestamp: tm.Date}
	body, err := e.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}
	if err := c.publish(ctx, TestimonialCreated, body); err != nil {
		return err
	}
	slog.InfoContext(ctx, "Published testimonial event", "id", e.ID, "role", e.Role)
	return nil
}

func (c *Client) publish(ctx context.Context, routingKey string, body []byte) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	operation := func() (struct{}, error) {
		err := c.channel.PublishWithContext(
			ctx,
			c.exchangeName,
			routingKey,
			false, // mandatory
			false, // immediate
			amqp091.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp091.Persistent,
				Timestamp:    time.Now(),
				Body:         body,
			},
		)
		return struct{}{}, err
	}

	if _, err := backoff.Retry(ctx, operation, backoff.WithBackOff(backoff.NewExponentialBackOff())); err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}

// Consume delivers queued events to handler until ctx is cancelled.
// Undecodable messages are rejected without requeue; handler errors requeue
// the delivery.
func (c *Client) Consume(ctx context.Context, handler func(routingKey string, body []byte) error) error {
	msgs, err := c.channel.Consume(
		c.queueName,
		"",    // consumer
		false, // auto-ack (manual ack)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}

	slog.InfoContext(ctx, "Started consuming ledger events", "queue", c.queueName)

	for {
		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "Stopping event consumption", "reason", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}

			if err := handler(delivery.RoutingKey, delivery.Body); err != nil {
				slog.ErrorContext(ctx, "Failed to handle event",
					"error", err,
					"routing_key", delivery.RoutingKey)
				delivery.Nack(false, true)
				continue
			}

			delivery.Ack(false)
		}
	}
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
