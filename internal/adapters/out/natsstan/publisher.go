// Package natsstan relays outbox messages to NATS Streaming.
package natsstan

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"orders/internal/core/ports"

	stan "github.com/nats-io/stan.go"
)

// Conn is the part of stan.Conn the publisher needs.
type Conn interface {
	Publish(subject string, data []byte) error
	Close() error
}

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher sends outbox messages to a NATS Streaming subject, wrapped in an
// Envelope.
//
// Example:
//
//	sc, err := natsstan.Connect("test-cluster", "", nats.DefaultURL)
//	if err != nil {
//		return err
//	}
//	publisher := natsstan.NewPublisher(sc, "orders.events")
//	defer publisher.Close()
type Publisher struct {
	conn    Conn
	subject string
}

// Envelope is what subscribers receive. Payload is the event body as written
// to the outbox.
type Envelope struct {
	ID          string          `json:"id"`
	AggregateID string          `json:"aggregate_id"`
	Event       string          `json:"event"`
	OccurredAt  time.Time       `json:"occurred_at"`
	Payload     json.RawMessage `json:"payload"`
}

// NewPublisher publishes every message to subject over conn.
func NewPublisher(conn Conn, subject string) *Publisher {
	return &Publisher{conn: conn, subject: subject}
}

// Connect opens a streaming connection. An empty clientID gets a unique one.
func Connect(clusterID, clientID, natsURL string) (stan.Conn, error) {
	if clientID == "" {
		clientID = fmt.Sprintf("orders-%d", time.Now().UnixNano())
	}
	sc, err := stan.Connect(clusterID, clientID, stan.NatsURL(natsURL))
	if err != nil {
		return nil, fmt.Errorf("stan connect: %w", err)
	}
	return sc, nil
}

// Publish blocks until the streaming server acknowledges the message.
func (p *Publisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	payload := json.RawMessage(msg.Payload)
	if !json.Valid(payload) {
		return fmt.Errorf("outbox message %s has an invalid payload", msg.ID)
	}
	body, err := json.Marshal(Envelope{
		ID:          msg.ID.String(),
		AggregateID: msg.AggregateID.String(),
		Event:       msg.EventName,
		OccurredAt:  msg.OccurredAt,
		Payload:     payload,
	})
	if err != nil {
		return fmt.Errorf("marshal: %w", err)
	}

	if err = p.conn.Publish(p.subject, body); err != nil {
		return fmt.Errorf("publish %s to %s: %w", msg.ID, p.subject, err)
	}
	return nil
}

// Close closes the underlying connection.
func (p *Publisher) Close() error {
	return p.conn.Close()
}
