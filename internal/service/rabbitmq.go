package service

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/Sanjay-Kirti/YouMDB/internal/config"
	"github.com/Sanjay-Kirti/YouMDB/internal/models"
	"github.com/Sanjay-Kirti/YouMDB/pkg/logger"
)

// MessagePublisher publishes suggestion events to the broker with
// publisher confirms, so an accepted suggestion is never silently lost.
type MessagePublisher struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	config  *config.RabbitMQ
	mu      sync.RWMutex
}

func NewMessagePublisher(cfg *config.RabbitMQ) (*MessagePublisher, error) {
	mp := &MessagePublisher{
		config: cfg,
	}

	if err := mp.connect(); err != nil {
		return nil, err
	}

	return mp, nil
}

func (mp *MessagePublisher) connect() error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	conn, ch, err := dial(mp.config)
	if err != nil {
		return err
	}

	// Enable publisher confirms
	if err := ch.Confirm(false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return fmt.Errorf("failed to enable publisher confirms: %w", err)
	}

	mp.conn = conn
	mp.channel = ch

	logger.Log.Info("Connected to RabbitMQ",
		zap.String("exchange", mp.config.Exchange),
		zap.String("queue", mp.config.Queue),
	)

	return nil
}

func (mp *MessagePublisher) PublishEvent(ctx context.Context, event *models.SuggestionEvent) error {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	if mp.channel == nil {
		return fmt.Errorf("channel is not initialized")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	// Publish with confirmation
	confirms := mp.channel.NotifyPublish(make(chan amqp.Confirmation, 1))

	err = mp.channel.PublishWithContext(
		ctx,
		mp.config.Exchange,   // exchange
		mp.config.RoutingKey, // routing key
		true,                 // mandatory
		false,                // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			MessageId:    event.SuggestionID,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	// Wait for confirmation with timeout
	select {
	case confirm := <-confirms:
		if !confirm.Ack {
			return fmt.Errorf("message was not acknowledged by broker")
		}
	case <-time.After(5 * time.Second):
		return fmt.Errorf("timeout waiting for publish confirmation")
	case <-ctx.Done():
		return ctx.Err()
	}

	logger.Log.Debug("Published suggestion event",
		zap.String("suggestionId", event.SuggestionID),
		zap.String("routingKey", mp.config.RoutingKey),
	)

	return nil
}

func (mp *MessagePublisher) Close() error {
	mp.mu.Lock()
	defer mp.mu.Unlock()

	var errs []error
	if mp.channel != nil {
		if err := mp.channel.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if mp.conn != nil {
		if err := mp.conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors closing publisher: %v", errs)
	}

	logger.Log.Info("RabbitMQ publisher closed")
	return nil
}

func (mp *MessagePublisher) IsHealthy() bool {
	mp.mu.RLock()
	defer mp.mu.RUnlock()

	return mp.conn != nil && !mp.conn.IsClosed() && mp.channel != nil
}

// MessageConsumer delivers suggestion events from the broker to a handler.
// Failed deliveries are nacked without requeue; the periodic sweep picks
// the suggestion up again from the store.
type MessageConsumer struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	config  *config.RabbitMQ
}

func NewMessageConsumer(cfg *config.RabbitMQ) (*MessageConsumer, error) {
	conn, ch, err := dial(cfg)
	if err != nil {
		return nil, err
	}

	if err := ch.Qos(1, 0, false); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	return &MessageConsumer{
		conn:    conn,
		channel: ch,
		config:  cfg,
	}, nil
}

// Consume blocks delivering events to handler until ctx is cancelled or
// the broker connection drops.
func (mc *MessageConsumer) Consume(ctx context.Context, handler func(context.Context, *models.SuggestionEvent) error) error {
	deliveries, err := mc.channel.Consume(
		mc.config.Queue, // queue
		"",              // consumer tag
		false,           // auto-ack
		false,           // exclusive
		false,           // no-local
		false,           // no-wait
		nil,             // args
	)
	if err != nil {
		return fmt.Errorf("failed to start consuming: %w", err)
	}

	logger.Log.Info("Consuming suggestion events", zap.String("queue", mc.config.Queue))

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case delivery, ok := <-deliveries:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}

			var event models.SuggestionEvent
			if err := json.Unmarshal(delivery.Body, &event); err != nil {
				logger.Log.Warn("Dropping malformed suggestion event", zap.Error(err))
				_ = delivery.Nack(false, false)
				continue
			}

			if err := handler(ctx, &event); err != nil {
				logger.Log.Warn("Suggestion handler failed",
					zap.String("suggestionId", event.SuggestionID),
					zap.Error(err))
				_ = delivery.Nack(false, false)
				continue
			}

			_ = delivery.Ack(false)
		}
	}
}

func (mc *MessageConsumer) Close() error {
	var errs []error
	if mc.channel != nil {
		if err := mc.channel.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if mc.conn != nil {
		if err := mc.conn.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("errors closing consumer: %v", errs)
	}
	return nil
}

// dial connects and declares the exchange, queue and binding shared by
// publisher and consumer.
func dial(cfg *config.RabbitMQ) (*amqp.Connection, *amqp.Channel, error) {
	connURL := fmt.Sprintf("amqp://%s:%s@%s:%d/",
		cfg.User, cfg.Password, cfg.Host, cfg.Port)

	conn, err := amqp.Dial(connURL)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(
		cfg.Exchange, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	_, err = ch.QueueDeclare(
		cfg.Queue, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		amqp.Table{
			"x-message-ttl": 86400000, // 24 hours
			"x-max-length":  100000,   // max 100k messages
		},
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to declare queue: %w", err)
	}

	if err := ch.QueueBind(
		cfg.Queue,      // queue name
		cfg.RoutingKey, // routing key
		cfg.Exchange,   // exchange
		false,
		nil,
	); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, nil, fmt.Errorf("failed to bind queue: %w", err)
	}

	return conn, ch, nil
}
