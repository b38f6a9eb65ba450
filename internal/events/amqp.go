package events

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const publishTimeout = 5 * time.Second

// AMQPPublisher sends events to a durable direct exchange, routed by event type.
// A channel lost to a broker restart is redialled on the next Publish.
type AMQPPublisher struct {
	mu       sync.Mutex
	url      string
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	logger   *zap.Logger
}

func NewAMQPPublisher(url, exchange string, logger *zap.Logger) (*AMQPPublisher, error) {
	p := &AMQPPublisher{url: url, exchange: exchange, logger: logger}
	if err := p.connect(); err != nil {
		return nil, err
	}

	logger.Info("AMQP publisher ready", zap.String("exchange", exchange))
	return p, nil
}

// connect dials a new connection and channel. Callers hold mu once the
// publisher is shared.
func (p *AMQPPublisher) connect() error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		return fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		p.exchange, // name
		"direct",   // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return fmt.Errorf("declare exchange: %w", err)
	}

	go p.watch(channel.NotifyClose(make(chan *amqp.Error, 1)))

	p.conn = conn
	p.channel = channel
	return nil
}

// watch logs an abnormal channel close once. A clean Close sends nothing.
func (p *AMQPPublisher) watch(closed <-chan *amqp.Error) {
	if err, ok := <-closed; ok && err != nil {
		p.logger.Error("AMQP channel closed, reconnecting on next publish", zap.Error(err))
	}
}

func (p *AMQPPublisher) ensureChannel() error {
	if p.channel != nil && !p.channel.IsClosed() {
		return nil
	}
	if p.conn != nil && !p.conn.IsClosed() {
		p.conn.Close()
	}
	p.conn, p.channel = nil, nil

	if err := p.connect(); err != nil {
		return fmt.Errorf("reconnect AMQP: %w", err)
	}
	p.logger.Info("AMQP publisher reconnected", zap.String("exchange", p.exchange))
	return nil
}

func (p *AMQPPublisher) Publish(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ensureChannel(); err != nil {
		return err
	}

	err = p.channel.PublishWithContext(
		ctx,
		p.exchange,     // exchange
		string(e.Type), // routing key
		false,          // mandatory
		false,          // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    e.OccurredAt,
			MessageId:    e.ID,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	p.logger.Debug("Event published", zap.String("type", string(e.Type)), zap.String("id", e.ID))
	return nil
}

func (p *AMQPPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var firstErr error
	if p.channel != nil && !p.channel.IsClosed() {
		firstErr = p.channel.Close()
	}
	if p.conn != nil && !p.conn.IsClosed() {
		if err := p.conn.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	p.conn, p.channel = nil, nil
	return firstErr
}
