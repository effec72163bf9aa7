package ports

import (
	"github.com/shopspring/decimal"
	"github.com/srgjo27/seat_hold/internal/core/domain"
)

// Renderer receives visual intents. Implementations must not call back into
// the controller from these methods.
type Renderer interface {
	RenderGrid(rows, cols int, visuals map[domain.SeatKey]domain.SeatVisual)
	SetSeatVisual(key domain.SeatKey, visual domain.SeatVisual)
	SetCountdown(text string)
	SetLimitIndicator(used, max int, level domain.LimitLevel)
	Notify(message string, severity domain.Severity)

	// ShowSelection and ShowHold hide their panel when keys is empty.
	ShowSelection(keys []domain.SeatKey, total decimal.Decimal)
	ShowHold(keys []domain.SeatKey, total decimal.Decimal)
	ShowTickets(tickets []domain.Ticket)
	SetMapLocked(locked bool)
	ShowLoadError(message string)
}
