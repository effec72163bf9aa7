package domain

import (
	"time"

	"github.com/google/uuid"
)

type Ticket struct {
	SeatKey SeatKey
	Code    string
}

type OutcomeKind string

const (
	OutcomeHeld      OutcomeKind = "HELD"
	OutcomeResumed   OutcomeKind = "RESUMED"
	OutcomeConfirmed OutcomeKind = "CONFIRMED"
	OutcomeCancelled OutcomeKind = "CANCELLED"
	OutcomeExpired   OutcomeKind = "EXPIRED"
	OutcomeRejected  OutcomeKind = "REJECTED"
)

// HoldOutcome records one lifecycle transition of a session's hold.
type HoldOutcome struct {
	ID         uuid.UUID
	SessionID  uuid.UUID
	EventID    string
	UserID     UserID
	Kind       OutcomeKind
	Seats      []SeatKey
	HoldUntil  *time.Time
	Tickets    []Ticket
	Reason     string
	OccurredAt time.Time
}

func NewHoldOutcome(sessionID uuid.UUID, eventID string, user UserID, kind OutcomeKind, seats []SeatKey, at time.Time) HoldOutcome {
	return HoldOutcome{
		ID:         uuid.New(),
		SessionID:  sessionID,
		EventID:    eventID,
		UserID:     user,
		Kind:       kind,
		Seats:      seats,
		OccurredAt: at.UTC(),
	}
}
