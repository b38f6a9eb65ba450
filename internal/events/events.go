// Package events announces record changes to other systems.
package events

import (
	"context"
	"encoding/json"
	"time"

	"finance-tracker/pkg/config"

	"go.uber.org/zap"
)

type Type string

const (
	TransactionCreated Type = "transaction.created"
	TransactionUpdated Type = "transaction.updated"
	TransactionDeleted Type = "transaction.deleted"
	BudgetCreated      Type = "budget.created"
)

type Event struct {
	Type       Type            `json:"type"`
	Entity     string          `json:"entity"`
	ID         string          `json:"id"`
	OccurredAt time.Time       `json:"occurred_at"`
	Payload    json.RawMessage `json:"payload,omitempty"`
}

// New builds an event stamped with the current time. A payload that cannot
// be encoded is left out.
func New(t Type, entity, id string, payload any) Event {
	e := Event{Type: t, Entity: entity, ID: id, OccurredAt: time.Now().UTC()}
	if payload != nil {
		if raw, err := json.Marshal(payload); err == nil {
			e.Payload = raw
		}
	}
	return e
}

type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Noop discards every event. It is used when no broker is configured.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }
func (Noop) Close() error                         { return nil }

// NewPublisher connects to the broker when one is configured and falls back
// to Noop otherwise.
func NewPublisher(cfg config.AMQPConfig, logger *zap.Logger) (Publisher, error) {
	if cfg.URL == "" {
		logger.Info("AMQP_URL not set, change events are disabled")
		return Noop{}, nil
	}
	publisher, err := NewAMQPPublisher(cfg.URL, cfg.Exchange, logger)
	if err != nil {
		return nil, err
	}
	return publisher, nil
}
