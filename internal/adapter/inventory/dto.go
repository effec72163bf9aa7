package inventory

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/srgjo27/seat_hold/internal/core/domain"
)

type seatsRequest struct {
	EventID string   `json:"event_id"`
	Seats   []string `json:"seats"`
}

func newSeatsRequest(eventID string, seats []domain.SeatKey) seatsRequest {
	req := seatsRequest{EventID: eventID, Seats: make([]string, len(seats))}
	for i, key := range seats {
		req.Seats[i] = key.String()
	}
	return req
}

type errorResponse struct {
	Error string `json:"error"`
}

type seatDTO struct {
	Status    string        `json:"status" validate:"required,oneof=FREE HELD SOLD"`
	Zone      string        `json:"zone"`
	HeldBy    domain.UserID `json:"held_by" validate:"required_if=Status HELD"`
	HoldUntil *string       `json:"hold_until" validate:"required_if=Status HELD"`
}

type seatMapResponse struct {
	Seats map[string]seatDTO `json:"seats" validate:"dive,keys,seatkey,endkeys"`
	Rows  int                `json:"rows" validate:"gte=0,lte=26"`
	Cols  int                `json:"cols" validate:"gte=0"`
}

func (r seatMapResponse) toDomain() (*domain.Snapshot, error) {
	snap := &domain.Snapshot{
		Seats: make(map[domain.SeatKey]domain.Seat, len(r.Seats)),
		Rows:  r.Rows,
		Cols:  r.Cols,
	}

	for id, dto := range r.Seats {
		key, err := domain.ParseSeatKey(id)
		if err != nil {
			return nil, err
		}

		seat := domain.Seat{
			Status: domain.SeatStatus(dto.Status),
			Zone:   dto.Zone,
			HeldBy: dto.HeldBy,
		}

		if dto.HoldUntil != nil && *dto.HoldUntil != "" {
			until, err := parseInstant(*dto.HoldUntil)
			if err != nil {
				return nil, fmt.Errorf("seat %s: %w", id, err)
			}
			seat.HoldUntil = &until
		}

		snap.Seats[key] = seat
	}

	return snap, nil
}

type holdResponse struct {
	Seats     []string `json:"seats" validate:"dive,seatkey"`
	HoldUntil string   `json:"hold_until" validate:"required"`
}

func (r holdResponse) toDomain() (*domain.HoldGrant, error) {
	until, err := parseInstant(r.HoldUntil)
	if err != nil {
		return nil, err
	}

	grant := &domain.HoldGrant{Seats: make([]domain.SeatKey, 0, len(r.Seats)), HoldUntil: until}
	for _, id := range r.Seats {
		grant.Seats = append(grant.Seats, domain.SeatKey(id))
	}

	return grant, nil
}

type ticketDTO struct {
	SeatID string `json:"seat_id" validate:"seatkey"`
	Code   string `json:"code" validate:"required"`
}

type purchaseResponse struct {
	Tickets []ticketDTO `json:"tickets" validate:"dive"`
}

func (r purchaseResponse) toDomain() ([]domain.Ticket, error) {
	tickets := make([]domain.Ticket, 0, len(r.Tickets))
	for _, t := range r.Tickets {
		tickets = append(tickets, domain.Ticket{SeatKey: domain.SeatKey(t.SeatID), Code: t.Code})
	}
	return tickets, nil
}

// Layouts accepted for hold_until. Values without an offset are UTC.
var instantLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

func parseInstant(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t.UTC(), nil
	}

	for _, layout := range instantLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterValidation("seatkey", validateSeatKey)

	return v
}

func validateSeatKey(fl validator.FieldLevel) bool {
	_, err := domain.ParseSeatKey(fl.Field().String())
	return err == nil
}
