package domain

import (
	"errors"
	"fmt"
)

var (
	ErrCatalogUnavailable = errors.New("seat map is unavailable")
	ErrHoldRejected       = errors.New("hold was rejected")
	ErrPurchaseFailed     = errors.New("purchase failed")
	ErrLimitExceeded      = errors.New("seat limit exceeded")
	ErrSessionExpired     = errors.New("hold session expired, reload required")

	ErrCatalogNotLoaded  = errors.New("seat map not loaded")
	ErrInvalidSeatKey    = errors.New("invalid seat key")
	ErrUnknownSeat       = errors.New("seat is outside the map")
	ErrSeatUnavailable   = errors.New("seat is not available")
	ErrEmptySelection    = errors.New("no seats selected")
	ErrHoldActive        = errors.New("a hold is already active")
	ErrNoActiveHold      = errors.New("no active hold")
	ErrRequestInFlight   = errors.New("another request is in progress")
	ErrInvalidTransition = errors.New("invalid hold transition")
)

// LimitExceededError reports the usage that blocked a selection.
type LimitExceededError struct {
	Owned    int
	Selected int
	Max      int
}

func (e *LimitExceededError) Error() string {
	return fmt.Sprintf("seat limit exceeded: you may hold %d seats (already have %d, %d selected)", e.Max, e.Owned, e.Selected)
}

func (e *LimitExceededError) Is(target error) bool {
	return target == ErrLimitExceeded
}
