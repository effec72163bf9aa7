package handler_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/srgjo27/seat_hold/internal/adapter/handler"
	"github.com/srgjo27/seat_hold/internal/adapter/render/console"
	"github.com/srgjo27/seat_hold/internal/core/domain"
	"github.com/srgjo27/seat_hold/internal/core/ports/mocks"
	"github.com/srgjo27/seat_hold/internal/core/services"
	"github.com/srgjo27/seat_hold/internal/platform/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

var start = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func newHandler(t *testing.T) (*handler.CommandHandler, *mocks.InventoryService, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer
	inv := mocks.NewInventoryService(t)

	cfg := services.SessionConfig{
		EventID:         "12",
		UserID:          "42",
		MaxSeatsPerUser: 2,
		SeatPrice:       decimal.NewFromInt(100),
		Rows:            2,
		Cols:            3,
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	ctrl := services.NewSyncController(cfg, inv, console.NewRenderer(&out), clock.NewVirtual(start), services.WithLogger(logger))
	t.Cleanup(ctrl.Close)

	return handler.NewCommandHandler(ctrl, &out), inv, &out
}

func emptyMap() *domain.Snapshot {
	return &domain.Snapshot{Rows: 2, Cols: 3, Seats: map[domain.SeatKey]domain.Seat{}}
}

func TestHandle_BeforeLoad(t *testing.T) {
	h, _, out := newHandler(t)

	assert.True(t, h.Handle(context.Background(), "toggle a1"))

	assert.Contains(t, out.String(), "The seat map is not loaded yet.")
}

func TestHandle_SelectHoldConfirm(t *testing.T) {
	h, inv, out := newHandler(t)
	ctx := context.Background()

	inv.On("GetSeats", mock.Anything, "12").Return(emptyMap(), nil).Once()
	inv.On("Hold", mock.Anything, "12", []domain.SeatKey{"A1", "B2"}).
		Return(&domain.HoldGrant{Seats: []domain.SeatKey{"A1", "B2"}, HoldUntil: start.Add(10 * time.Minute)}, nil).Once()
	inv.On("Purchase", mock.Anything, "12", []domain.SeatKey{"A1", "B2"}).
		Return([]domain.Ticket{{SeatKey: "A1", Code: "TCK-1"}, {SeatKey: "B2", Code: "TCK-2"}}, nil).Once()

	h.Handle(ctx, "load")
	h.Handle(ctx, "toggle a1 b2")
	assert.Contains(t, out.String(), "Selected: A1 B2 (2 seats, total 200.00)")
	assert.Contains(t, out.String(), "Seats 2/2: Limit reached")

	out.Reset()
	h.Handle(ctx, "toggle a3")
	assert.Contains(t, out.String(), "[WARNING] Limit reached.")

	h.Handle(ctx, "hold")
	assert.Contains(t, out.String(), "Held: A1 B2")
	assert.Contains(t, out.String(), "Hold time left: 10:00")

	out.Reset()
	h.Handle(ctx, "status")
	assert.Contains(t, out.String(), "Hold: HELD A1 B2 until")
	assert.Contains(t, out.String(), "Seats: 2 owned, 0 selected, 2 max")

	out.Reset()
	h.Handle(ctx, "confirm")
	assert.Contains(t, out.String(), "seat A1   TCK-1")
	assert.Contains(t, out.String(), "[SUCCESS] Purchase confirmed.")

	out.Reset()
	h.Handle(ctx, "tickets")
	assert.Contains(t, out.String(), "seat B2   TCK-2")
}

func TestHandle_Errors(t *testing.T) {
	h, inv, out := newHandler(t)
	ctx := context.Background()

	inv.On("GetSeats", mock.Anything, "12").Return(emptyMap(), nil).Once()
	h.Handle(ctx, "load")

	tests := []struct {
		line string
		want string
	}{
		{line: "toggle Z9", want: "No such seat"},
		{line: "toggle 1A", want: "No such seat"},
		{line: "toggle", want: "usage: toggle"},
		{line: "hold", want: "Select at least one seat first."},
		{line: "confirm", want: "You have no seats on hold."},
		{line: "cancel", want: "You have no seats on hold."},
		{line: "tickets", want: "No tickets yet."},
		{line: "dance", want: `unknown command "dance"`},
		{line: "help", want: "toggle A1 [B2..]"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			out.Reset()
			assert.True(t, h.Handle(ctx, tt.line))
			assert.Contains(t, out.String(), tt.want)
		})
	}
}

func TestHandle_RejectedHoldIsAnnouncedOnce(t *testing.T) {
	h, inv, out := newHandler(t)
	ctx := context.Background()

	inv.On("GetSeats", mock.Anything, "12").Return(emptyMap(), nil).Twice()
	inv.On("Hold", mock.Anything, "12", []domain.SeatKey{"A2"}).Return(nil, errors.New("taken")).Once()

	h.Handle(ctx, "load")
	h.Handle(ctx, "toggle A2")
	out.Reset()

	h.Handle(ctx, "hold")

	assert.Contains(t, out.String(), "[DANGER] Could not hold the selected seats.")
	assert.NotContains(t, out.String(), "Error:")
}

func TestHandle_Quit(t *testing.T) {
	h, _, _ := newHandler(t)

	assert.False(t, h.Handle(context.Background(), "quit"))
	assert.True(t, h.Handle(context.Background(), "   "))
}
