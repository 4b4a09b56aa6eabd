package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/GoArmGo/MovieCatalog/internal/config"
	"github.com/GoArmGo/MovieCatalog/internal/messaging/payloads"
)

// Client publishes and consumes mail payloads on one durable queue.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	queue   amqp.Queue
	logger  *slog.Logger
}

// NewClient connects to RabbitMQ and declares the mail queue.
func NewClient(cfg *config.Config, logger *slog.Logger) (*Client, error) {
	client := &Client{logger: logger}

	conn, err := amqp.Dial(cfg.RabbitMQ.RabbitMQURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}
	client.conn = conn

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}
	client.channel = ch

	// Idempotent: the queue is created only when missing.
	q, err := ch.QueueDeclare(
		cfg.RabbitMQ.RabbitMQQueueName, // name
		true,                           // durable
		false,                          // delete when unused
		false,                          // exclusive
		false,                          // no-wait
		nil,                            // arguments
	)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to declare a queue: %w", err)
	}
	client.queue = q

	logger.Info("RabbitMQ queue declared", "queue", q.Name, "messages", q.Messages)
	return client, nil
}

// Close closes the channel and the connection.
func (c *Client) Close() {
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			c.logger.Error("failed to close RabbitMQ channel", "error", err)
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			c.logger.Error("failed to close RabbitMQ connection", "error", err)
		}
	}
	c.logger.Info("RabbitMQ connection closed")
}

// PublishMail implements ports.MailPublisher.
func (c *Client) PublishMail(ctx context.Context, payload payloads.MailPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload to JSON: %w", err)
	}

	publishCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(
		publishCtx,
		"",           // exchange
		c.queue.Name, // routing key
		false,        // mandatory
		false,        // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish a message: %w", err)
	}

	c.logger.Info("mail published", "queue", c.queue.Name, "template", payload.Template)
	return nil
}

// StartConsumingMail implements ports.MailConsumer. Messages are acked manually:
// a malformed body is dropped, a handler failure is requeued.
func (c *Client) StartConsumingMail(ctx context.Context, handler func(context.Context, payloads.MailPayload) error) error {
	msgs, err := c.channel.Consume(
		c.queue.Name, // queue
		"",           // consumer
		false,        // auto-ack
		false,        // exclusive
		false,        // no-local
		false,        // no-wait
		nil,          // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	c.logger.Info("consumer registered", "queue", c.queue.Name)

	go func() {
		for {
			select {
			case msg, ok := <-msgs:
				if !ok {
					c.logger.Info("RabbitMQ delivery channel closed, stopping consumer")
					return
				}
				c.handleDelivery(ctx, msg, handler)
			case <-ctx.Done():
				c.logger.Info("context cancelled, stopping RabbitMQ consumer")
				return
			}
		}
	}()

	return nil
}

type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func (c *Client) handleDelivery(ctx context.Context, msg amqp.Delivery, handler func(context.Context, payloads.MailPayload) error) {
	dispatch(ctx, msg.Body, msg, handler, c.logger)
}

func dispatch(ctx context.Context, body []byte, ack acknowledger, handler func(context.Context, payloads.MailPayload) error, logger *slog.Logger) {
	var payload payloads.MailPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		logger.Error("failed to unmarshal message", "error", err)
		if err := ack.Nack(false, false); err != nil {
			logger.Error("failed to nack malformed message", "error", err)
		}
		return
	}

	if err := handler(ctx, payload); err != nil {
		logger.Error("failed to process message", "template", payload.Template, "error", err)
		if err := ack.Nack(false, true); err != nil {
			logger.Error("failed to nack message", "error", err)
		}
		return
	}

	if err := ack.Ack(false); err != nil {
		logger.Error("failed to ack message", "error", err)
	}
}
