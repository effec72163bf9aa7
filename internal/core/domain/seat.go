package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

type SeatStatus string

const (
	SeatFree SeatStatus = "FREE"
	SeatHeld SeatStatus = "HELD"
	SeatSold SeatStatus = "SOLD"
)

func (s SeatStatus) Valid() bool {
	switch s {
	case SeatFree, SeatHeld, SeatSold:
		return true
	}
	return false
}

const DefaultZone = "GENERAL"

// MaxRows is bounded by the row letters A..Z.
const MaxRows = 26

// SeatKey identifies a seat by row letter and column number, e.g. "A1" or "C12".
type SeatKey string

func ParseSeatKey(s string) (SeatKey, error) {
	if len(s) < 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidSeatKey, s)
	}

	row := s[0]
	if row < 'A' || row > 'Z' {
		return "", fmt.Errorf("%w: %q", ErrInvalidSeatKey, s)
	}

	if s[1] == '0' {
		return "", fmt.Errorf("%w: %q", ErrInvalidSeatKey, s)
	}

	for i := 1; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return "", fmt.Errorf("%w: %q", ErrInvalidSeatKey, s)
		}
	}

	col, err := strconv.Atoi(s[1:])
	if err != nil || col < 1 {
		return "", fmt.Errorf("%w: %q", ErrInvalidSeatKey, s)
	}

	return SeatKey(s), nil
}

func NewSeatKey(row, col int) SeatKey {
	return SeatKey(fmt.Sprintf("%c%d", rune('A'+row), col))
}

// Row returns the zero-based row index. The key must have been parsed.
func (k SeatKey) Row() int {
	return int(k[0] - 'A')
}

// Col returns the one-based column number. The key must have been parsed.
func (k SeatKey) Col() int {
	col, _ := strconv.Atoi(string(k[1:]))
	return col
}

func (k SeatKey) String() string {
	return string(k)
}

// UserID is compared with exact equality. The inventory may encode it as a
// JSON number or string; both decode to the same canonical text.
type UserID string

func (u UserID) IsZero() bool {
	return u == ""
}

func (u *UserID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*u = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*u = UserID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("user id must be a string or number: %w", err)
	}

	if i, err := n.Int64(); err == nil {
		*u = UserID(strconv.FormatInt(i, 10))
		return nil
	}

	return fmt.Errorf("user id must be an integer, got %s", n)
}

type Seat struct {
	Status    SeatStatus
	Zone      string
	HeldBy    UserID
	HoldUntil *time.Time
}

// EffectiveStatus discounts a hold whose expiry has passed.
func (s Seat) EffectiveStatus(now time.Time) SeatStatus {
	if s.Status == SeatHeld && s.HoldUntil != nil && s.HoldUntil.Before(now) {
		return SeatFree
	}
	return s.Status
}

func (s Seat) OwnedBy(user UserID) bool {
	return !user.IsZero() && s.HeldBy == user
}

// Snapshot is the full seat map for one event as reported by the inventory.
type Snapshot struct {
	Seats map[SeatKey]Seat
	Rows  int
	Cols  int
}

type HoldGrant struct {
	Seats     []SeatKey
	HoldUntil time.Time
}
