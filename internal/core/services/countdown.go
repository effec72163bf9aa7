package services

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/srgjo27/seat_hold/internal/core/domain"
)

// startCountdownLocked replaces any running countdown with one bound to the
// current hold generation.
func (s *SyncController) startCountdownLocked() {
	s.stopCountdownLocked()

	now := s.clock.Now()
	s.renderer.SetCountdown(domain.FormatCountdown(s.hold.Remaining(now)))

	gen := s.hold.Generation()
	s.countdown = s.clock.Every(s.cfg.TickInterval, func() { s.tick(gen) })
}

func (s *SyncController) tick(gen uint64) {
	s.mu.Lock()

	if s.hold.Generation() != gen || s.hold.State() != domain.HoldActive {
		s.mu.Unlock()
		return
	}

	now := s.clock.Now()
	remaining, expired := s.hold.Tick(now)
	if !expired {
		s.renderer.SetCountdown(domain.FormatCountdown(remaining))
		s.mu.Unlock()
		return
	}

	seats := s.hold.Seats()
	until := s.hold.HoldUntil()

	s.stopCountdownLocked()
	s.renderer.SetCountdown(ExpiredCountdownText)
	s.renderer.SetMapLocked(true)
	s.renderer.Notify("Your hold has expired. The seats have been released.", domain.SeverityDanger)
	s.scheduleReloadLocked(s.cfg.GraceDelay)
	s.mu.Unlock()

	s.logger.Info("hold expired", "seats", seats, "hold_until", until)

	outcome := s.newOutcome(domain.OutcomeExpired, seats, now)
	outcome.HoldUntil = &until
	s.journal(s.ctx, outcome)
}

func (s *SyncController) stopCountdownLocked() {
	if s.countdown != nil {
		s.countdown.Stop()
		s.countdown = nil
	}
}

// scheduleReloadLocked keeps at most one pending reload.
func (s *SyncController) scheduleReloadLocked(d time.Duration) {
	if s.reload != nil {
		s.reload.Stop()
	}

	s.reload = s.clock.AfterFunc(d, func() {
		if s.ctx.Err() != nil {
			return
		}
		if err := s.LoadCatalog(s.ctx); err != nil {
			s.logger.Warn("scheduled reload failed", "error", err)
		}
	})
}

func (s *SyncController) stopTimersLocked() {
	s.stopCountdownLocked()
	if s.reload != nil {
		s.reload.Stop()
		s.reload = nil
	}
}

func (s *SyncController) renderAllLocked(now time.Time) {
	rows, cols := s.catalog.Dimensions()
	s.renderer.RenderGrid(rows, cols, domain.Visuals(s.catalog, s.selection, s.cfg.UserID, now))
	s.renderer.SetMapLocked(s.hold.State() == domain.HoldExpired)
	s.renderHoldLocked()
	s.renderSelectionLocked(now)
}

func (s *SyncController) renderSelectionLocked(now time.Time) {
	keys := s.selection.Keys()
	s.renderer.ShowSelection(keys, s.totalFor(len(keys)))
	s.renderLimitLocked(now)
}

func (s *SyncController) renderHoldLocked() {
	if s.hold.State() != domain.HoldActive {
		s.renderer.ShowHold(nil, decimal.Zero)
		return
	}

	keys := s.hold.Seats()
	s.renderer.ShowHold(keys, s.totalFor(len(keys)))
}

func (s *SyncController) renderLimitLocked(now time.Time) {
	status := domain.EvaluateLimit(s.catalog, s.selection, s.cfg.UserID, now, s.cfg.MaxSeatsPerUser)
	s.renderer.SetLimitIndicator(status.Used(), status.Max, status.Level)
}

func (s *SyncController) totalFor(n int) decimal.Decimal {
	return s.cfg.SeatPrice.Mul(decimal.NewFromInt(int64(n)))
}
