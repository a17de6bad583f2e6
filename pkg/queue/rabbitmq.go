package queue

import (
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"chilaq/pkg/config"
	"chilaq/pkg/logger"
)

const (
	LikeEventQueueName = "like_events"
	LikeEventExchange  = "likes"
	likeRoutingKey     = "post_liked"
)

// LikeEvent is published once per newly created like record. Idempotent
// re-likes and rate-limited declines never produce an event.
type LikeEvent struct {
	PostID        int64  `json:"post_id"`
	ArtistID      int64  `json:"artist_id"`
	IdentityToken string `json:"identity_token"`
	Likes         int64  `json:"likes"`
	OccurredAt    string `json:"occurred_at"`
}

type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *logger.Logger
}

func NewRabbitMQClient(cfg *config.Config, log *logger.Logger) (*Client, error) {
	url := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.RabbitMQUser,
		cfg.RabbitMQPassword,
		cfg.RabbitMQHost,
		cfg.RabbitMQPort,
	)

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		LikeEventExchange, // name
		"direct",          // type
		true,              // durable
		false,             // auto-deleted
		false,             // internal
		false,             // no-wait
		nil,               // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = channel.QueueDeclare(
		LikeEventQueueName, // name
		true,               // durable
		false,              // delete when unused
		false,              // exclusive
		false,              // no-wait
		nil,                // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	err = channel.QueueBind(
		LikeEventQueueName,
		likeRoutingKey,
		LikeEventExchange,
		false,
		nil,
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	log.Info("Connected to RabbitMQ at %s:%s", cfg.RabbitMQHost, cfg.RabbitMQPort)

	return &Client{
		conn:    conn,
		channel: channel,
		logger:  log,
	}, nil
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

// PublishLikeEvent publishes a like event for downstream consumers
// (notifications, rankings). Persistent delivery; the ledger itself never
// depends on the broker being up.
func (c *Client) PublishLikeEvent(event LikeEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal like event: %w", err)
	}

	err = c.channel.Publish(
		LikeEventExchange,
		likeRoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		c.logger.Error("[RABBITMQ] Failed to publish like event for post %d: %v", event.PostID, err)
		return fmt.Errorf("failed to publish like event: %w", err)
	}

	c.logger.Info("[RABBITMQ] Published like event: post_id=%d likes=%d", event.PostID, event.Likes)
	return nil
}
