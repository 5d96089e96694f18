// Package events publishes domain events to a message broker.
package events

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"skillbridge/internal/pkg/logger"
)

const (
	ExchangeName = "skillbridge.events"
	ExchangeKind = "topic"
)

type Publisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
	Close() error
}

// channel is the part of *amqp.Channel the publisher uses.
type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	IsClosed() bool
	Close() error
}

type connectFunc func(url string) (io.Closer, channel, error)

// RabbitPublisher publishes to a topic exchange. A closed connection or
// channel is re-dialed on the next Publish.
type RabbitPublisher struct {
	url     string
	connect connectFunc

	mu      sync.Mutex
	conn    io.Closer
	channel channel
}

func NewRabbitPublisher(url string) (*RabbitPublisher, error) {
	return newRabbitPublisher(url, dialRabbit)
}

func newRabbitPublisher(url string, connect connectFunc) (*RabbitPublisher, error) {
	p := &RabbitPublisher{url: url, connect: connect}
	if err := p.reconnect(); err != nil {
		return nil, err
	}
	return p, nil
}

func dialRabbit(url string) (io.Closer, channel, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, nil, fmt.Errorf("rabbitmq dial: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("rabbitmq channel: %w", err)
	}

	if err := ch.ExchangeDeclare(ExchangeName, ExchangeKind, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, nil, fmt.Errorf("rabbitmq exchange declare: %w", err)
	}
	return conn, ch, nil
}

// reconnect must be called with mu held, or before the publisher is shared.
func (p *RabbitPublisher) reconnect() error {
	p.closeLocked()
	conn, ch, err := p.connect(p.url)
	if err != nil {
		return err
	}
	p.conn, p.channel = conn, ch
	return nil
}

func (p *RabbitPublisher) Publish(ctx context.Context, routingKey string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	}

	// amqp channels are not safe for concurrent publishing
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.channel.IsClosed() {
		if err := p.reconnect(); err != nil {
			return fmt.Errorf("publish %s: %w", routingKey, err)
		}
		logger.Info("rabbitmq reconnected")
	}

	err = p.channel.PublishWithContext(ctx, ExchangeName, routingKey, false, false, msg)
	if errors.Is(err, amqp.ErrClosed) {
		// broker went away between the check and the publish
		if rerr := p.reconnect(); rerr != nil {
			return fmt.Errorf("publish %s: %w", routingKey, rerr)
		}
		logger.Info("rabbitmq reconnected")
		err = p.channel.PublishWithContext(ctx, ExchangeName, routingKey, false, false, msg)
	}
	if err != nil {
		return fmt.Errorf("publish %s: %w", routingKey, err)
	}
	return nil
}

func (p *RabbitPublisher) closeLocked() error {
	if p.channel != nil {
		p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		err := p.conn.Close()
		p.conn = nil
		return err
	}
	return nil
}

func (p *RabbitPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.closeLocked()
}

// LogPublisher writes events to the log instead of a broker.
type LogPublisher struct{}

func (LogPublisher) Publish(_ context.Context, routingKey string, payload any) error {
	logger.Info("event", zap.String("routing_key", routingKey), zap.Any("payload", payload))
	return nil
}

func (LogPublisher) Close() error { return nil }
