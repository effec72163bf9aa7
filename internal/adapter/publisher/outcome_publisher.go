// Package publisher sends hold outcomes to RabbitMQ so other services can
// follow what each session did with its seats.
package publisher

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/srgjo27/seat_hold/internal/core/domain"
)

const DefaultQueue = "seathold.outcomes"

type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

type OutcomeEvent struct {
	ID         string          `json:"id"`
	SessionID  string          `json:"session_id"`
	EventID    string          `json:"event_id"`
	UserID     string          `json:"user_id"`
	Kind       string          `json:"kind"`
	Seats      []string        `json:"seats"`
	HoldUntil  *time.Time      `json:"hold_until,omitempty"`
	Tickets    []TicketPayload `json:"tickets,omitempty"`
	Reason     string          `json:"reason,omitempty"`
	OccurredAt time.Time       `json:"occurred_at"`
}

type TicketPayload struct {
	SeatID string `json:"seat_id"`
	Code   string `json:"code"`
}

func NewOutcomeEvent(o domain.HoldOutcome) OutcomeEvent {
	ev := OutcomeEvent{
		ID:         o.ID.String(),
		SessionID:  o.SessionID.String(),
		EventID:    o.EventID,
		UserID:     string(o.UserID),
		Kind:       string(o.Kind),
		Seats:      make([]string, len(o.Seats)),
		HoldUntil:  o.HoldUntil,
		Reason:     o.Reason,
		OccurredAt: o.OccurredAt,
	}

	for i, key := range o.Seats {
		ev.Seats[i] = key.String()
	}
	for _, t := range o.Tickets {
		ev.Tickets = append(ev.Tickets, TicketPayload{SeatID: t.SeatKey.String(), Code: t.Code})
	}

	return ev
}

// OutcomePublisher publishes persistent JSON messages to a durable queue on
// the default exchange.
type OutcomePublisher struct {
	mu    sync.Mutex
	conn  *amqp.Connection
	ch    channel
	queue string
}

func Dial(url, queue string) (*OutcomePublisher, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("rabbitmq: dial failed: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("rabbitmq: channel open failed: %w", err)
	}

	p, err := newOutcomePublisher(ch, queue)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	p.conn = conn

	return p, nil
}

func newOutcomePublisher(ch channel, queue string) (*OutcomePublisher, error) {
	if queue == "" {
		queue = DefaultQueue
	}

	if _, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	); err != nil {
		return nil, fmt.Errorf("rabbitmq: queue declare failed: %w", err)
	}

	return &OutcomePublisher{ch: ch, queue: queue}, nil
}

func (p *OutcomePublisher) PublishOutcome(ctx context.Context, outcome domain.HoldOutcome) error {
	body, err := json.Marshal(NewOutcomeEvent(outcome))
	if err != nil {
		return fmt.Errorf("rabbitmq: marshal outcome failed: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    outcome.ID.String(),
		Type:         string(outcome.Kind),
		Timestamp:    outcome.OccurredAt,
		Body:         body,
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if err := p.ch.PublishWithContext(ctx, "", p.queue, false, false, pub); err != nil {
		return fmt.Errorf("rabbitmq: publish failed: %w", err)
	}

	return nil
}

func (p *OutcomePublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.ch.Close()
	if p.conn != nil {
		if cerr := p.conn.Close(); err == nil {
			err = cerr
		}
	}
	return err
}
