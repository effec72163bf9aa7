package publisher

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/srgjo27/seat_hold/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChannel struct {
	declared   []string
	durable    bool
	published  []amqp.Publishing
	keys       []string
	publishErr error
	closed     bool
}

func (f *fakeChannel) QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error) {
	f.declared = append(f.declared, name)
	f.durable = durable
	return amqp.Queue{Name: name}, nil
}

func (f *fakeChannel) PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error {
	if f.publishErr != nil {
		return f.publishErr
	}
	f.keys = append(f.keys, key)
	f.published = append(f.published, msg)
	return nil
}

func (f *fakeChannel) Close() error {
	f.closed = true
	return nil
}

func TestNewOutcomePublisher_DeclaresDurableQueue(t *testing.T) {
	ch := &fakeChannel{}

	p, err := newOutcomePublisher(ch, "")

	require.NoError(t, err)
	assert.Equal(t, []string{DefaultQueue}, ch.declared)
	assert.True(t, ch.durable)

	require.NoError(t, p.Close())
	assert.True(t, ch.closed)
}

func TestPublishOutcome(t *testing.T) {
	ch := &fakeChannel{}
	p, err := newOutcomePublisher(ch, "custom.outcomes")
	require.NoError(t, err)

	at := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	outcome := domain.NewHoldOutcome(uuid.New(), "evt-1", "42", domain.OutcomeConfirmed, []domain.SeatKey{"A1", "A2"}, at)
	outcome.Tickets = []domain.Ticket{{SeatKey: "A1", Code: "TCK-1"}, {SeatKey: "A2", Code: "TCK-2"}}

	require.NoError(t, p.PublishOutcome(context.Background(), outcome))

	require.Len(t, ch.published, 1)
	msg := ch.published[0]
	assert.Equal(t, "custom.outcomes", ch.keys[0])
	assert.Equal(t, amqp.Persistent, msg.DeliveryMode)
	assert.Equal(t, "application/json", msg.ContentType)
	assert.Equal(t, outcome.ID.String(), msg.MessageId)
	assert.Equal(t, "CONFIRMED", msg.Type)

	var ev OutcomeEvent
	require.NoError(t, json.Unmarshal(msg.Body, &ev))
	assert.Equal(t, "42", ev.UserID)
	assert.Equal(t, []string{"A1", "A2"}, ev.Seats)
	assert.Equal(t, []TicketPayload{{SeatID: "A1", Code: "TCK-1"}, {SeatID: "A2", Code: "TCK-2"}}, ev.Tickets)
	assert.Nil(t, ev.HoldUntil)
	assert.True(t, ev.OccurredAt.Equal(at))
}

func TestPublishOutcome_Error(t *testing.T) {
	ch := &fakeChannel{publishErr: errors.New("channel closed")}
	p, err := newOutcomePublisher(ch, DefaultQueue)
	require.NoError(t, err)

	outcome := domain.NewHoldOutcome(uuid.New(), "evt-1", "42", domain.OutcomeExpired, []domain.SeatKey{"A1"}, time.Now())

	err = p.PublishOutcome(context.Background(), outcome)

	assert.ErrorContains(t, err, "channel closed")
}
