package messagequeue

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/streadway/amqp"
	"go.uber.org/zap"
)

// ErrClosed is returned by Consume when the broker closes the delivery channel.
var ErrClosed = errors.New("messagequeue: delivery channel closed")

// RabbitMQService implements the MessageQueue interface using RabbitMQ.
type RabbitMQService struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *zap.Logger

	// amqp.Channel is not safe for concurrent publishes.
	mu       sync.Mutex
	declared map[string]struct{}
}

// NewRabbitMQServiceConfig contains options for creating a new RabbitMQService.
type NewRabbitMQServiceConfig struct {
	URL string
}

// NewRabbitMQService creates a new instance of RabbitMQService.
func NewRabbitMQService(cfg NewRabbitMQServiceConfig, logger *zap.Logger) (*RabbitMQService, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open RabbitMQ channel: %w", err)
	}

	logger.Info("Successfully connected to RabbitMQ and opened a channel")
	return &RabbitMQService{
		conn:     conn,
		channel:  ch,
		logger:   logger,
		declared: make(map[string]struct{}),
	}, nil
}

func (s *RabbitMQService) declare(queueName string) error {
	if _, ok := s.declared[queueName]; ok {
		return nil
	}
	_, err := s.channel.QueueDeclare(
		queueName, // name
		true,      // durable
		false,     // delete when unused
		false,     // exclusive
		false,     // no-wait
		nil,       // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", queueName, err)
	}
	s.declared[queueName] = struct{}{}
	return nil
}

// Publish sends a persistent JSON message to a durable queue.
func (s *RabbitMQService) Publish(ctx context.Context, queueName string, body []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.declare(queueName); err != nil {
		return err
	}
	err := s.channel.Publish(
		"",        // exchange
		queueName, // routing key (queue name)
		false,     // mandatory
		false,     // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			DeliveryMode: amqp.Persistent,
		})
	if err != nil {
		return fmt.Errorf("publish to queue %s: %w", queueName, err)
	}
	return nil
}

// Consume delivers messages from queueName to handler with manual acks.
func (s *RabbitMQService) Consume(ctx context.Context, queueName string, handler Handler) error {
	s.mu.Lock()
	err := s.declare(queueName)
	s.mu.Unlock()
	if err != nil {
		return err
	}

	msgs, err := s.channel.Consume(
		queueName, // queue
		"",        // consumer
		false,     // auto-ack
		false,     // exclusive
		false,     // no-local
		false,     // no-wait
		nil,       // args
	)
	if err != nil {
		return fmt.Errorf("register consumer for queue %s: %w", queueName, err)
	}

	s.logger.Info("Waiting for messages", zap.String("queue", queueName))
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return ErrClosed
			}
			if err := handler(ctx, d.Body); err != nil {
				s.logger.Warn("Message rejected", zap.String("queue", queueName), zap.Error(err))
				_ = d.Nack(false, false)
				continue
			}
			_ = d.Ack(false)
		}
	}
}

// Close closes the RabbitMQ channel and connection.
func (s *RabbitMQService) Close() error {
	var errs []error
	if s.channel != nil {
		if err := s.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close channel: %w", err))
		}
	}
	if s.conn != nil {
		if err := s.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close connection: %w", err))
		}
	}
	return errors.Join(errs...)
}
