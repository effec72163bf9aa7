package domain

import (
	"fmt"
	"time"
)

type HoldState string

const (
	HoldIdle    HoldState = "IDLE"
	HoldActive  HoldState = "HELD"
	HoldExpired HoldState = "EXPIRED"
)

// HoldLifecycle is the state machine of a single hold. It owns no timers; the
// caller drives Tick from its own scheduler.
type HoldLifecycle struct {
	state      HoldState
	seats      []SeatKey
	holdUntil  time.Time
	generation uint64
}

func NewHoldLifecycle() *HoldLifecycle {
	return &HoldLifecycle{state: HoldIdle}
}

func (h *HoldLifecycle) State() HoldState {
	return h.state
}

func (h *HoldLifecycle) Seats() []SeatKey {
	out := make([]SeatKey, len(h.seats))
	copy(out, h.seats)
	return out
}

func (h *HoldLifecycle) HoldUntil() time.Time {
	return h.holdUntil
}

// Generation changes every time a hold becomes active, so callbacks scheduled
// for an earlier hold can detect they are stale.
func (h *HoldLifecycle) Generation() uint64 {
	return h.generation
}

// Grant moves IDLE to HELD with the seats the server actually granted.
func (h *HoldLifecycle) Grant(seats []SeatKey, until time.Time) error {
	if h.state != HoldIdle {
		return fmt.Errorf("%w: grant from %s", ErrInvalidTransition, h.state)
	}
	if len(seats) == 0 {
		return fmt.Errorf("%w: empty grant", ErrInvalidTransition)
	}
	h.activate(seats, until)
	return nil
}

// Resume rebuilds an active hold found in a freshly loaded snapshot.
func (h *HoldLifecycle) Resume(seats []SeatKey, until time.Time) {
	h.activate(seats, until)
}

func (h *HoldLifecycle) activate(seats []SeatKey, until time.Time) {
	keys := make([]SeatKey, len(seats))
	copy(keys, seats)
	sortKeys(keys)

	h.state = HoldActive
	h.seats = keys
	h.holdUntil = until.UTC()
	h.generation++
}

// Remaining is max(0, holdUntil - now). It is zero outside HELD.
func (h *HoldLifecycle) Remaining(now time.Time) time.Duration {
	if h.state != HoldActive {
		return 0
	}
	return max(0, h.holdUntil.Sub(now))
}

// Tick advances the countdown; it reports expired once, on the HELD to
// EXPIRED transition.
func (h *HoldLifecycle) Tick(now time.Time) (time.Duration, bool) {
	if h.state != HoldActive {
		return 0, false
	}

	remaining := h.Remaining(now)
	if remaining > 0 {
		return remaining, false
	}

	h.state = HoldExpired
	return 0, true
}

// Confirm ends the hold after a successful purchase. EXPIRED is accepted as
// well because a purchase sent before local expiry may still succeed.
func (h *HoldLifecycle) Confirm() ([]SeatKey, error) {
	if h.state != HoldActive && h.state != HoldExpired {
		return nil, fmt.Errorf("%w: confirm from %s", ErrInvalidTransition, h.state)
	}
	return h.end(), nil
}

func (h *HoldLifecycle) Cancel() ([]SeatKey, error) {
	if h.state != HoldActive {
		return nil, fmt.Errorf("%w: cancel from %s", ErrInvalidTransition, h.state)
	}
	return h.end(), nil
}

func (h *HoldLifecycle) Reset() {
	h.end()
}

func (h *HoldLifecycle) end() []SeatKey {
	seats := h.seats
	h.state = HoldIdle
	h.seats = nil
	h.holdUntil = time.Time{}
	return seats
}

// FormatCountdown renders a remaining duration as MM:SS.
func FormatCountdown(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d / time.Second)
	return fmt.Sprintf("%02d:%02d", total/60, total%60)
}
