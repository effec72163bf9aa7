package domain

import (
	"fmt"
	"sort"
	"time"
)

// SeatCatalog is the local mirror of one event's seat map. It is replaced
// wholesale on every Load; the Mark* methods apply optimistic local changes
// that the next Load overwrites.
type SeatCatalog struct {
	seats  map[SeatKey]Seat
	rows   int
	cols   int
	loaded bool
}

func NewSeatCatalog() *SeatCatalog {
	return &SeatCatalog{seats: make(map[SeatKey]Seat)}
}

// Load replaces all entries from snap. fallbackRows/fallbackCols are used when
// the snapshot does not carry grid dimensions. On error the catalog is left
// untouched.
func (c *SeatCatalog) Load(snap Snapshot, fallbackRows, fallbackCols int) error {
	rows, cols := snap.Rows, snap.Cols
	if rows <= 0 {
		rows = fallbackRows
	}
	if cols <= 0 {
		cols = fallbackCols
	}

	if rows < 1 || rows > MaxRows || cols < 1 {
		return fmt.Errorf("invalid grid %dx%d", rows, cols)
	}

	seats := make(map[SeatKey]Seat, len(snap.Seats))
	for key, seat := range snap.Seats {
		if _, err := ParseSeatKey(string(key)); err != nil {
			return err
		}

		if key.Row() >= rows || key.Col() > cols {
			return fmt.Errorf("%w: %s outside %dx%d grid", ErrUnknownSeat, key, rows, cols)
		}

		if !seat.Status.Valid() {
			return fmt.Errorf("seat %s has invalid status %q", key, seat.Status)
		}

		if seat.Status == SeatHeld && (seat.HeldBy.IsZero() || seat.HoldUntil == nil) {
			return fmt.Errorf("held seat %s is missing holder or expiry", key)
		}

		if seat.Status != SeatHeld {
			seat.HoldUntil = nil
		}
		if seat.Status == SeatFree {
			seat.HeldBy = ""
		}
		if seat.Zone == "" {
			seat.Zone = DefaultZone
		}

		seats[key] = seat
	}

	c.seats = seats
	c.rows = rows
	c.cols = cols
	c.loaded = true

	return nil
}

func (c *SeatCatalog) Loaded() bool {
	return c.loaded
}

func (c *SeatCatalog) Dimensions() (rows, cols int) {
	return c.rows, c.cols
}

// Contains reports whether key lies inside the loaded grid.
func (c *SeatCatalog) Contains(key SeatKey) bool {
	if !c.loaded {
		return false
	}
	if _, err := ParseSeatKey(string(key)); err != nil {
		return false
	}
	return key.Row() < c.rows && key.Col() <= c.cols
}

// Seat returns the stored seat. Grid positions missing from the snapshot are
// reported as free seats in the default zone.
func (c *SeatCatalog) Seat(key SeatKey) (Seat, bool) {
	if !c.Contains(key) {
		return Seat{}, false
	}
	if seat, ok := c.seats[key]; ok {
		return seat, true
	}
	return Seat{Status: SeatFree, Zone: DefaultZone}, true
}

// EffectiveStatus must be used instead of the stored status for every
// rendering or selection decision. Keys outside the grid have no status.
func (c *SeatCatalog) EffectiveStatus(key SeatKey, now time.Time) SeatStatus {
	seat, ok := c.Seat(key)
	if !ok {
		return ""
	}
	return seat.EffectiveStatus(now)
}

// CountOwnedByUser counts sold seats bought by user plus unexpired holds of user.
func (c *SeatCatalog) CountOwnedByUser(user UserID, now time.Time) int {
	n := 0
	for _, seat := range c.seats {
		if !seat.OwnedBy(user) {
			continue
		}

		switch seat.EffectiveStatus(now) {
		case SeatSold, SeatHeld:
			n++
		}
	}
	return n
}

// ActiveHoldsOf returns the seats held by user that have not expired at now,
// sorted, together with the earliest expiry among them.
func (c *SeatCatalog) ActiveHoldsOf(user UserID, now time.Time) ([]SeatKey, time.Time) {
	var keys []SeatKey
	var earliest time.Time

	for key, seat := range c.seats {
		if seat.Status != SeatHeld || !seat.OwnedBy(user) || seat.HoldUntil == nil {
			continue
		}
		if !seat.HoldUntil.After(now) {
			continue
		}

		keys = append(keys, key)
		if earliest.IsZero() || seat.HoldUntil.Before(earliest) {
			earliest = *seat.HoldUntil
		}
	}

	sortKeys(keys)
	return keys, earliest
}

func (c *SeatCatalog) MarkHeld(keys []SeatKey, user UserID, until time.Time) {
	for _, key := range keys {
		seat, ok := c.Seat(key)
		if !ok || seat.Status == SeatSold {
			continue
		}
		expiry := until
		seat.Status = SeatHeld
		seat.HeldBy = user
		seat.HoldUntil = &expiry
		c.seats[key] = seat
	}
}

func (c *SeatCatalog) MarkSold(keys []SeatKey, user UserID) {
	for _, key := range keys {
		seat, ok := c.Seat(key)
		if !ok {
			continue
		}
		seat.Status = SeatSold
		seat.HeldBy = user
		seat.HoldUntil = nil
		c.seats[key] = seat
	}
}

func (c *SeatCatalog) MarkFree(keys []SeatKey) {
	for _, key := range keys {
		seat, ok := c.Seat(key)
		if !ok || seat.Status == SeatSold {
			continue
		}
		seat.Status = SeatFree
		seat.HeldBy = ""
		seat.HoldUntil = nil
		c.seats[key] = seat
	}
}

// Keys lists every grid position in row-major order.
func (c *SeatCatalog) Keys() []SeatKey {
	keys := make([]SeatKey, 0, c.rows*c.cols)
	for r := 0; r < c.rows; r++ {
		for col := 1; col <= c.cols; col++ {
			keys = append(keys, NewSeatKey(r, col))
		}
	}
	return keys
}

func sortKeys(keys []SeatKey) {
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
}
