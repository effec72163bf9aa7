// Package console draws the seat map and session panels as plain text.
package console

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"github.com/srgjo27/seat_hold/internal/core/domain"
)

var symbols = map[domain.SeatVisual]string{
	domain.VisualFree:     ".",
	domain.VisualSelected: "*",
	domain.VisualMyHold:   "H",
	domain.VisualHeld:     "x",
	domain.VisualSold:     "#",
	domain.VisualMySold:   "$",
}

const legend = "legend: . free  * selected  H your hold  x held  # sold  $ yours"

// Renderer writes render intents to out. It is safe for concurrent use; the
// countdown calls it from timer goroutines.
type Renderer struct {
	mu        sync.Mutex
	out       io.Writer
	rows      int
	cols      int
	visuals   map[domain.SeatKey]domain.SeatVisual
	countdown string
	locked    bool
}

func NewRenderer(out io.Writer) *Renderer {
	return &Renderer{out: out, visuals: make(map[domain.SeatKey]domain.SeatVisual)}
}

func (r *Renderer) RenderGrid(rows, cols int, visuals map[domain.SeatKey]domain.SeatVisual) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rows, r.cols = rows, cols
	r.visuals = make(map[domain.SeatKey]domain.SeatVisual, len(visuals))
	for k, v := range visuals {
		r.visuals[k] = v
	}

	r.writeGrid()
}

func (r *Renderer) writeGrid() {
	var b strings.Builder

	b.WriteString("   ")
	for col := 1; col <= r.cols; col++ {
		fmt.Fprintf(&b, "%3d", col)
	}
	b.WriteByte('\n')

	for row := 0; row < r.rows; row++ {
		fmt.Fprintf(&b, "%-3c", rune('A'+row))
		for col := 1; col <= r.cols; col++ {
			sym, ok := symbols[r.visuals[domain.NewSeatKey(row, col)]]
			if !ok {
				sym = symbols[domain.VisualFree]
			}
			fmt.Fprintf(&b, "%3s", sym)
		}
		b.WriteByte('\n')
	}

	b.WriteString(legend)
	b.WriteByte('\n')

	io.WriteString(r.out, b.String())
}

func (r *Renderer) SetSeatVisual(key domain.SeatKey, visual domain.SeatVisual) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.visuals[key] = visual
	fmt.Fprintf(r.out, "  %s %s\n", key, visual)
}

// SetCountdown announces whole minutes and expiry; every value is kept for
// Countdown.
func (r *Renderer) SetCountdown(text string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.countdown = text
	if strings.HasSuffix(text, ":00") || !strings.Contains(text, ":") {
		fmt.Fprintf(r.out, "Hold time left: %s\n", text)
	}
}

func (r *Renderer) Countdown() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.countdown
}

func (r *Renderer) SetLimitIndicator(used, max int, level domain.LimitLevel) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.out, "Seats %d/%d: %s\n", used, max, LimitText(used, max, level))
}

// LimitText is the user-facing wording of a limit level.
func LimitText(used, max int, level domain.LimitLevel) string {
	left := max - used
	switch level {
	case domain.LimitReached:
		return "Limit reached"
	case domain.LimitWarning:
		return fmt.Sprintf("Almost at your limit, %d left", left)
	default:
		return fmt.Sprintf("You can pick %d more", left)
	}
}

func (r *Renderer) Notify(message string, severity domain.Severity) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.out, "[%s] %s\n", strings.ToUpper(string(severity)), message)
}

func (r *Renderer) ShowSelection(keys []domain.SeatKey, total decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.writePanel("Selected", keys, total)
}

func (r *Renderer) ShowHold(keys []domain.SeatKey, total decimal.Decimal) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.writePanel("Held", keys, total)
}

func (r *Renderer) writePanel(title string, keys []domain.SeatKey, total decimal.Decimal) {
	if len(keys) == 0 {
		return
	}

	tags := make([]string, len(keys))
	for i, k := range keys {
		tags[i] = k.String()
	}

	fmt.Fprintf(r.out, "%s: %s (%d seats, total %s)\n", title, strings.Join(tags, " "), len(keys), total.StringFixed(2))
}

func (r *Renderer) ShowTickets(tickets []domain.Ticket) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(tickets) == 0 {
		fmt.Fprintln(r.out, "No tickets.")
		return
	}

	fmt.Fprintln(r.out, "Tickets:")
	for _, t := range tickets {
		fmt.Fprintf(r.out, "  seat %-4s %s\n", t.SeatKey, t.Code)
	}
}

func (r *Renderer) SetMapLocked(locked bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if locked && !r.locked {
		fmt.Fprintln(r.out, "Seat map locked until it reloads.")
	}
	r.locked = locked
}

func (r *Renderer) Locked() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.locked
}

func (r *Renderer) ShowLoadError(message string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fmt.Fprintf(r.out, "[ERROR] %s\n", message)
}
