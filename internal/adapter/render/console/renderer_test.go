package console_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/srgjo27/seat_hold/internal/adapter/render/console"
	"github.com/srgjo27/seat_hold/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestRenderGrid(t *testing.T) {
	var buf bytes.Buffer
	r := console.NewRenderer(&buf)

	r.RenderGrid(2, 3, map[domain.SeatKey]domain.SeatVisual{
		"A1": domain.VisualSelected,
		"A2": domain.VisualMyHold,
		"A3": domain.VisualHeld,
		"B1": domain.VisualSold,
		"B2": domain.VisualMySold,
	})

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Equal(t, []string{
		"     1  2  3",
		"A    *  H  x",
		"B    #  $  .",
		"legend: . free  * selected  H your hold  x held  # sold  $ yours",
	}, lines)
}

func TestLimitText(t *testing.T) {
	tests := []struct {
		used, max int
		level     domain.LimitLevel
		want      string
	}{
		{used: 3, max: 3, level: domain.LimitReached, want: "Limit reached"},
		{used: 4, max: 6, level: domain.LimitWarning, want: "Almost at your limit, 2 left"},
		{used: 1, max: 6, level: domain.LimitNormal, want: "You can pick 5 more"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, console.LimitText(tt.used, tt.max, tt.level))
		})
	}
}

func TestPanels(t *testing.T) {
	var buf bytes.Buffer
	r := console.NewRenderer(&buf)

	r.ShowSelection(nil, decimal.Zero)
	assert.Empty(t, buf.String())

	r.ShowHold([]domain.SeatKey{"A1", "A2"}, decimal.NewFromInt(150))
	assert.Equal(t, "Held: A1 A2 (2 seats, total 150.00)\n", buf.String())
}

func TestCountdownAndLock(t *testing.T) {
	var buf bytes.Buffer
	r := console.NewRenderer(&buf)

	r.SetCountdown("02:00")
	r.SetCountdown("01:59")
	r.SetCountdown("Expired!")
	r.SetMapLocked(true)
	r.SetMapLocked(true)

	assert.Equal(t, "Expired!", r.Countdown())
	assert.True(t, r.Locked())
	assert.Equal(t,
		"Hold time left: 02:00\nHold time left: Expired!\nSeat map locked until it reloads.\n",
		buf.String())
}

func TestNotifyAndTickets(t *testing.T) {
	var buf bytes.Buffer
	r := console.NewRenderer(&buf)

	r.Notify("Seats held!", domain.SeveritySuccess)
	r.ShowTickets([]domain.Ticket{{SeatKey: "B1", Code: "TCK-1"}})

	assert.Equal(t, "[SUCCESS] Seats held!\nTickets:\n  seat B1   TCK-1\n", buf.String())
}
