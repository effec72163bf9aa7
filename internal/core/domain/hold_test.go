package domain_test

import (
	"testing"
	"time"

	"github.com/srgjo27/seat_hold/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoldLifecycle_GrantTickExpire(t *testing.T) {
	h := domain.NewHoldLifecycle()
	assert.Equal(t, domain.HoldIdle, h.State())

	require.Error(t, h.Grant(nil, now.Add(time.Minute)))
	require.NoError(t, h.Grant([]domain.SeatKey{"B2", "A1"}, now.Add(2*time.Second)))

	assert.Equal(t, domain.HoldActive, h.State())
	assert.Equal(t, []domain.SeatKey{"A1", "B2"}, h.Seats())
	assert.ErrorIs(t, h.Grant([]domain.SeatKey{"C1"}, now), domain.ErrInvalidTransition)

	remaining, expired := h.Tick(now.Add(time.Second))
	assert.Equal(t, time.Second, remaining)
	assert.False(t, expired)

	remaining, expired = h.Tick(now.Add(2 * time.Second))
	assert.Zero(t, remaining)
	assert.True(t, expired)
	assert.Equal(t, domain.HoldExpired, h.State())

	// expiry is reported once
	_, expired = h.Tick(now.Add(3 * time.Second))
	assert.False(t, expired)

	_, err := h.Cancel()
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	seats, err := h.Confirm()
	require.NoError(t, err)
	assert.Equal(t, []domain.SeatKey{"A1", "B2"}, seats)
	assert.Equal(t, domain.HoldIdle, h.State())
}

func TestHoldLifecycle_GenerationAndCancel(t *testing.T) {
	h := domain.NewHoldLifecycle()

	h.Resume([]domain.SeatKey{"A1"}, now.Add(time.Minute))
	first := h.Generation()
	h.Resume([]domain.SeatKey{"A1", "A2"}, now.Add(time.Minute))
	assert.Greater(t, h.Generation(), first)

	seats, err := h.Cancel()
	require.NoError(t, err)
	assert.Equal(t, []domain.SeatKey{"A1", "A2"}, seats)
	assert.Zero(t, h.Remaining(now))
	assert.True(t, h.HoldUntil().IsZero())

	_, err = h.Confirm()
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestHoldLifecycle_SeatsIsACopy(t *testing.T) {
	h := domain.NewHoldLifecycle()
	require.NoError(t, h.Grant([]domain.SeatKey{"A1"}, now.Add(time.Minute)))

	seats := h.Seats()
	seats[0] = "Z9"

	assert.Equal(t, []domain.SeatKey{"A1"}, h.Seats())
}

func TestFormatCountdown(t *testing.T) {
	assert.Equal(t, "10:00", domain.FormatCountdown(10*time.Minute))
	assert.Equal(t, "01:05", domain.FormatCountdown(65*time.Second+900*time.Millisecond))
	assert.Equal(t, "00:00", domain.FormatCountdown(-time.Second))
}
