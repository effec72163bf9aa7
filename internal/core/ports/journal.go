package ports

import (
	"context"

	"github.com/srgjo27/seat_hold/internal/core/domain"
)

type TicketLedger interface {
	SaveTickets(ctx context.Context, eventID string, user domain.UserID, tickets []domain.Ticket) error
	ListTickets(ctx context.Context, eventID string, user domain.UserID) ([]domain.Ticket, error)
	RecordOutcome(ctx context.Context, outcome domain.HoldOutcome) error
}

type OutcomePublisher interface {
	PublishOutcome(ctx context.Context, outcome domain.HoldOutcome) error
}
