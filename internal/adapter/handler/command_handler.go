package handler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/srgjo27/seat_hold/internal/core/domain"
)

// Session is the part of the sync controller the console drives.
type Session interface {
	LoadCatalog(ctx context.Context) error
	ToggleSeat(key domain.SeatKey) error
	ClearSelection() error
	RequestHold(ctx context.Context) error
	RequestPurchase(ctx context.Context) ([]domain.Ticket, error)
	RequestRelease(ctx context.Context) error
	HoldState() domain.HoldState
	HeldSeats() []domain.SeatKey
	HoldUntil() time.Time
	Selection() []domain.SeatKey
	Limit() domain.LimitStatus
	Tickets(ctx context.Context) ([]domain.Ticket, error)
	Redraw()
}

const helpText = `commands:
  load              reload the seat map
  toggle A1 [B2..]  select or deselect seats
  clear             empty the selection
  hold              hold the selected seats
  confirm           buy the held seats
  cancel            release the held seats
  status            show hold, selection and limit
  map               redraw the seat map
  tickets           list your tickets
  help              show this help
  quit              leave
`

type CommandHandler struct {
	session Session
	out     io.Writer
}

func NewCommandHandler(session Session, out io.Writer) *CommandHandler {
	return &CommandHandler{session: session, out: out}
}

// Handle runs one input line. It returns false once the user asked to quit.
func (h *CommandHandler) Handle(ctx context.Context, line string) bool {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return true
	}

	cmd, args := strings.ToLower(fields[0]), fields[1:]

	switch cmd {
	case "load", "reload":
		h.report(h.session.LoadCatalog(ctx))

	case "toggle", "t":
		if len(args) == 0 {
			fmt.Fprintln(h.out, "usage: toggle <seat> [seat...]")
			return true
		}
		for _, arg := range args {
			key, err := domain.ParseSeatKey(strings.ToUpper(arg))
			if err == nil {
				err = h.session.ToggleSeat(key)
			}
			h.report(err)
		}

	case "clear":
		h.report(h.session.ClearSelection())

	case "hold":
		h.report(h.session.RequestHold(ctx))

	case "confirm", "buy":
		_, err := h.session.RequestPurchase(ctx)
		h.report(err)

	case "cancel", "release":
		h.report(h.session.RequestRelease(ctx))

	case "status":
		h.status()

	case "map":
		h.session.Redraw()

	case "tickets":
		h.tickets(ctx)

	case "help", "?":
		io.WriteString(h.out, helpText)

	case "quit", "exit":
		return false

	default:
		fmt.Fprintf(h.out, "unknown command %q, type help\n", cmd)
	}

	return true
}

func (h *CommandHandler) report(err error) {
	if err == nil {
		return
	}
	if msg := errorMessage(err); msg != "" {
		fmt.Fprintln(h.out, msg)
	}
}

// errorMessage returns "" for failures the renderer already announced.
func errorMessage(err error) string {
	switch {
	case errors.Is(err, domain.ErrHoldRejected),
		errors.Is(err, domain.ErrPurchaseFailed),
		errors.Is(err, domain.ErrCatalogUnavailable),
		errors.Is(err, domain.ErrLimitExceeded):
		return ""
	case errors.Is(err, domain.ErrSessionExpired):
		return "Your hold has expired. Wait for the seat map to reload."
	case errors.Is(err, domain.ErrCatalogNotLoaded):
		return "The seat map is not loaded yet. Type load."
	case errors.Is(err, domain.ErrInvalidSeatKey), errors.Is(err, domain.ErrUnknownSeat):
		return fmt.Sprintf("No such seat: %v", err)
	case errors.Is(err, domain.ErrSeatUnavailable):
		return fmt.Sprintf("Seat not available: %v", err)
	case errors.Is(err, domain.ErrEmptySelection):
		return "Select at least one seat first."
	case errors.Is(err, domain.ErrHoldActive):
		return "You already hold seats. Confirm or cancel them first."
	case errors.Is(err, domain.ErrNoActiveHold):
		return "You have no seats on hold."
	case errors.Is(err, domain.ErrRequestInFlight):
		return "Please wait for the previous request to finish."
	default:
		return fmt.Sprintf("Error: %v", err)
	}
}

func (h *CommandHandler) status() {
	state := h.session.HoldState()
	fmt.Fprintf(h.out, "Hold: %s", state)
	if state == domain.HoldActive {
		fmt.Fprintf(h.out, " %s until %s", joinKeys(h.session.HeldSeats()), h.session.HoldUntil().Local().Format(time.TimeOnly))
	}
	fmt.Fprintln(h.out)

	sel := h.session.Selection()
	if len(sel) == 0 {
		fmt.Fprintln(h.out, "Selected: none")
	} else {
		fmt.Fprintf(h.out, "Selected: %s\n", joinKeys(sel))
	}

	limit := h.session.Limit()
	fmt.Fprintf(h.out, "Seats: %d owned, %d selected, %d max\n", limit.Owned, limit.Selected, limit.Max)
}

func (h *CommandHandler) tickets(ctx context.Context) {
	tickets, err := h.session.Tickets(ctx)
	if err != nil {
		fmt.Fprintf(h.out, "Could not load your tickets: %v\n", err)
		return
	}

	if len(tickets) == 0 {
		fmt.Fprintln(h.out, "No tickets yet.")
		return
	}

	for _, t := range tickets {
		fmt.Fprintf(h.out, "  seat %-4s %s\n", t.SeatKey, t.Code)
	}
}

func joinKeys(keys []domain.SeatKey) string {
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k.String()
	}
	return strings.Join(parts, " ")
}
