package ports

import (
	"context"

	"github.com/srgjo27/seat_hold/internal/core/domain"
)

// InventoryService is the authoritative seat inventory. It owns hold expiry
// and purchase atomicity; callers only interpret its answers.
type InventoryService interface {
	GetSeats(ctx context.Context, eventID string) (*domain.Snapshot, error)
	Hold(ctx context.Context, eventID string, seats []domain.SeatKey) (*domain.HoldGrant, error)
	Purchase(ctx context.Context, eventID string, seats []domain.SeatKey) ([]domain.Ticket, error)
	Release(ctx context.Context, eventID string, seats []domain.SeatKey) error
}
