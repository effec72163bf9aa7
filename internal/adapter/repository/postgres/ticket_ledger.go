package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/srgjo27/seat_hold/internal/core/domain"
)

const schema = `
CREATE TABLE IF NOT EXISTS tickets (
	event_id   TEXT NOT NULL,
	user_id    TEXT NOT NULL,
	seat_key   TEXT NOT NULL,
	code       TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	PRIMARY KEY (event_id, seat_key, code)
);

CREATE TABLE IF NOT EXISTS hold_outcomes (
	id          UUID PRIMARY KEY,
	session_id  UUID NOT NULL,
	event_id    TEXT NOT NULL,
	user_id     TEXT NOT NULL,
	kind        TEXT NOT NULL,
	seats       TEXT[] NOT NULL,
	hold_until  TIMESTAMPTZ,
	tickets     JSONB,
	reason      TEXT,
	occurred_at TIMESTAMPTZ NOT NULL
);
`

// TicketLedger stores the user's issued tickets and the journal of hold
// outcomes of every session.
type TicketLedger struct {
	db *sql.DB
}

func NewTicketLedger(db *sql.DB) *TicketLedger {
	return &TicketLedger{db: db}
}

func (r *TicketLedger) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to create ledger schema: %w", err)
	}
	return nil
}

func (r *TicketLedger) SaveTickets(ctx context.Context, eventID string, user domain.UserID, tickets []domain.Ticket) error {
	if len(tickets) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	defer tx.Rollback()

	query := `
	INSERT INTO tickets (event_id, user_id, seat_key, code)
	VALUES ($1, $2, $3, $4)
	ON CONFLICT DO NOTHING
	`

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("failed to prepare ticket statement: %w", err)
	}

	defer stmt.Close()

	for _, t := range tickets {
		_, err := stmt.ExecContext(ctx, eventID, string(user), t.SeatKey.String(), t.Code)
		if err != nil {
			return fmt.Errorf("failed to insert ticket for seat %s: %w", t.SeatKey, err)
		}
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func (r *TicketLedger) ListTickets(ctx context.Context, eventID string, user domain.UserID) ([]domain.Ticket, error) {
	query := `
	SELECT seat_key, code FROM tickets
	WHERE event_id = $1 AND user_id = $2
	ORDER BY seat_key
	`

	rows, err := r.db.QueryContext(ctx, query, eventID, string(user))
	if err != nil {
		return nil, err
	}

	defer rows.Close()

	var tickets []domain.Ticket
	for rows.Next() {
		var seat, code string
		if err := rows.Scan(&seat, &code); err != nil {
			return nil, err
		}

		tickets = append(tickets, domain.Ticket{SeatKey: domain.SeatKey(seat), Code: code})
	}

	return tickets, rows.Err()
}

func (r *TicketLedger) RecordOutcome(ctx context.Context, outcome domain.HoldOutcome) error {
	query := `
	INSERT INTO hold_outcomes (id, session_id, event_id, user_id, kind, seats, hold_until, tickets, reason, occurred_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	seats := make([]string, len(outcome.Seats))
	for i, key := range outcome.Seats {
		seats[i] = key.String()
	}

	var holdUntil *time.Time
	if outcome.HoldUntil != nil {
		t := outcome.HoldUntil.UTC()
		holdUntil = &t
	}

	var tickets []byte
	if len(outcome.Tickets) > 0 {
		var err error
		if tickets, err = json.Marshal(outcome.Tickets); err != nil {
			return fmt.Errorf("failed to encode tickets: %w", err)
		}
	}

	var reason sql.NullString
	if outcome.Reason != "" {
		reason = sql.NullString{String: outcome.Reason, Valid: true}
	}

	_, err := r.db.ExecContext(ctx, query,
		outcome.ID,
		outcome.SessionID,
		outcome.EventID,
		string(outcome.UserID),
		string(outcome.Kind),
		pq.Array(seats),
		holdUntil,
		tickets,
		reason,
		outcome.OccurredAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert hold outcome %s: %w", outcome.Kind, err)
	}

	return nil
}
