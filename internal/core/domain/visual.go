package domain

import "time"

type SeatVisual string

const (
	VisualFree     SeatVisual = "free"
	VisualSelected SeatVisual = "selected"
	VisualMyHold   SeatVisual = "my-hold"
	VisualHeld     SeatVisual = "held"
	VisualSold     SeatVisual = "sold"
	VisualMySold   SeatVisual = "my-sold"
)

type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// VisualFor maps a seat to what the rendering surface should show.
func VisualFor(seat Seat, user UserID, selected bool, now time.Time) SeatVisual {
	if selected {
		return VisualSelected
	}

	switch seat.EffectiveStatus(now) {
	case SeatSold:
		if seat.OwnedBy(user) {
			return VisualMySold
		}
		return VisualSold
	case SeatHeld:
		if seat.OwnedBy(user) {
			return VisualMyHold
		}
		return VisualHeld
	default:
		return VisualFree
	}
}

// Visuals computes the visual state of every grid position.
func Visuals(catalog *SeatCatalog, selection *SelectionSet, user UserID, now time.Time) map[SeatKey]SeatVisual {
	keys := catalog.Keys()
	out := make(map[SeatKey]SeatVisual, len(keys))
	for _, key := range keys {
		seat, _ := catalog.Seat(key)
		out[key] = VisualFor(seat, user, selection.Contains(key), now)
	}
	return out
}
