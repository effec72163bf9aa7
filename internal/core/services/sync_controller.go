package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/srgjo27/seat_hold/internal/core/domain"
	"github.com/srgjo27/seat_hold/internal/core/ports"
)

const (
	DefaultTickInterval       = time.Second
	DefaultGraceDelay         = 3 * time.Second
	DefaultReleaseReloadDelay = 500 * time.Millisecond

	ExpiredCountdownText = "Expired!"
)

type SessionConfig struct {
	EventID         string
	UserID          domain.UserID
	MaxSeatsPerUser int
	SeatPrice       decimal.Decimal

	// Rows and Cols are used when a snapshot omits its grid dimensions.
	Rows int
	Cols int

	TickInterval       time.Duration
	GraceDelay         time.Duration
	ReleaseReloadDelay time.Duration
}

type Option func(*SyncController)

func WithLogger(logger *slog.Logger) Option {
	return func(s *SyncController) { s.logger = logger }
}

func WithLedger(ledger ports.TicketLedger) Option {
	return func(s *SyncController) { s.ledger = ledger }
}

func WithPublisher(publisher ports.OutcomePublisher) Option {
	return func(s *SyncController) { s.publisher = publisher }
}

// SyncController owns the session state and sequences every call to the
// inventory. All state is guarded by mu; inventory calls are made with mu
// released and reconciled afterwards. inFlight is the disabled trigger that
// keeps hold, purchase and release requests from overlapping.
type SyncController struct {
	cfg       SessionConfig
	inventory ports.InventoryService
	renderer  ports.Renderer
	clock     ports.Clock
	ledger    ports.TicketLedger
	publisher ports.OutcomePublisher
	logger    *slog.Logger
	sessionID uuid.UUID

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	catalog   *domain.SeatCatalog
	selection *domain.SelectionSet
	hold      *domain.HoldLifecycle
	inFlight  bool
	tickets   []domain.Ticket
	countdown ports.Timer
	reload    ports.Timer
}

func NewSyncController(cfg SessionConfig, inventory ports.InventoryService, renderer ports.Renderer, clock ports.Clock, opts ...Option) *SyncController {
	if cfg.TickInterval <= 0 {
		cfg.TickInterval = DefaultTickInterval
	}
	if cfg.GraceDelay <= 0 {
		cfg.GraceDelay = DefaultGraceDelay
	}
	if cfg.ReleaseReloadDelay <= 0 {
		cfg.ReleaseReloadDelay = DefaultReleaseReloadDelay
	}

	ctx, cancel := context.WithCancel(context.Background())

	s := &SyncController{
		cfg:       cfg,
		inventory: inventory,
		renderer:  renderer,
		clock:     clock,
		logger:    slog.Default(),
		sessionID: uuid.New(),
		ctx:       ctx,
		cancel:    cancel,
		catalog:   domain.NewSeatCatalog(),
		selection: domain.NewSelectionSet(),
		hold:      domain.NewHoldLifecycle(),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.logger = s.logger.With("session_id", s.sessionID.String(), "event_id", cfg.EventID)

	return s
}

func (s *SyncController) SessionID() uuid.UUID {
	return s.sessionID
}

// LoadCatalog replaces the local seat map with a fresh snapshot. On failure
// the previous map stays in place.
func (s *SyncController) LoadCatalog(ctx context.Context) error {
	snap, err := s.inventory.GetSeats(ctx, s.cfg.EventID)
	if err == nil && snap == nil {
		err = errors.New("empty seat map response")
	}

	var outcome *domain.HoldOutcome
	if err == nil {
		outcome, err = s.applySnapshot(*snap)
	}

	if err != nil {
		s.mu.Lock()
		s.renderer.ShowLoadError("Could not load the seat map.")
		s.mu.Unlock()

		s.logger.Error("seat map load failed", "error", err)
		return fmt.Errorf("%w: %w", domain.ErrCatalogUnavailable, err)
	}

	if outcome != nil {
		s.logger.Info("hold resumed from seat map", "seats", outcome.Seats, "hold_until", outcome.HoldUntil)
		s.journal(ctx, *outcome)
	}

	return nil
}

func (s *SyncController) applySnapshot(snap domain.Snapshot) (*domain.HoldOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.catalog.Load(snap, s.cfg.Rows, s.cfg.Cols); err != nil {
		return nil, err
	}

	prevState, prevSeats, prevUntil := s.hold.State(), s.hold.Seats(), s.hold.HoldUntil()

	s.selection.Clear()
	s.stopTimersLocked()

	now := s.clock.Now()

	var outcome *domain.HoldOutcome
	keys, until := s.catalog.ActiveHoldsOf(s.cfg.UserID, now)
	if len(keys) > 0 {
		// an unchanged hold keeps its generation so in-flight requests still own it
		unchanged := prevState == domain.HoldActive && slices.Equal(prevSeats, keys) && prevUntil.Equal(until.UTC())
		if !unchanged {
			s.hold.Resume(keys, until)

			o := s.newOutcome(domain.OutcomeResumed, keys, now)
			o.HoldUntil = &until
			outcome = &o
		}
		s.startCountdownLocked()
	} else {
		s.hold.Reset()
	}

	s.renderAllLocked(now)

	return outcome, nil
}

// ToggleSeat adds or removes key from the selection. Removal is always
// allowed; adding requires a free seat and room under the per-user cap.
func (s *SyncController) ToggleSeat(key domain.SeatKey) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hold.State() == domain.HoldExpired {
		s.renderer.Notify("Your hold has expired. Reload the page.", domain.SeverityWarning)
		return domain.ErrSessionExpired
	}

	if !s.catalog.Loaded() {
		return domain.ErrCatalogNotLoaded
	}

	if !s.catalog.Contains(key) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownSeat, key)
	}

	now := s.clock.Now()

	if s.selection.Contains(key) {
		s.selection.Remove(key)
		seat, _ := s.catalog.Seat(key)
		s.renderer.SetSeatVisual(key, domain.VisualFor(seat, s.cfg.UserID, false, now))
		s.renderSelectionLocked(now)
		return nil
	}

	if status := s.catalog.EffectiveStatus(key, now); status != domain.SeatFree {
		return fmt.Errorf("%w: %s is %s", domain.ErrSeatUnavailable, key, status)
	}

	if err := domain.CheckSelectionGate(s.catalog, s.selection, s.cfg.UserID, now, s.cfg.MaxSeatsPerUser); err != nil {
		var limitErr *domain.LimitExceededError
		if errors.As(err, &limitErr) {
			s.renderer.Notify(fmt.Sprintf("Limit reached. You may only have %d seats (you already have %d).", limitErr.Max, limitErr.Owned), domain.SeverityWarning)
		}
		s.renderLimitLocked(now)
		return err
	}

	s.selection.Add(key)
	s.renderer.SetSeatVisual(key, domain.VisualSelected)
	s.renderSelectionLocked(now)

	return nil
}

func (s *SyncController) ClearSelection() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.hold.State() == domain.HoldExpired {
		s.renderer.Notify("Your hold has expired. Reload the page.", domain.SeverityWarning)
		return domain.ErrSessionExpired
	}

	now := s.clock.Now()
	keys := s.selection.Keys()
	s.selection.Clear()

	for _, key := range keys {
		seat, _ := s.catalog.Seat(key)
		s.renderer.SetSeatVisual(key, domain.VisualFor(seat, s.cfg.UserID, false, now))
	}

	s.renderSelectionLocked(now)
	return nil
}

// RequestHold sends the current selection. The hold reflects the seats and
// expiry returned by the inventory, which may be narrower than requested.
func (s *SyncController) RequestHold(ctx context.Context) error {
	s.mu.Lock()
	switch {
	case s.hold.State() == domain.HoldExpired:
		s.mu.Unlock()
		return domain.ErrSessionExpired
	case s.inFlight:
		s.mu.Unlock()
		return domain.ErrRequestInFlight
	case s.hold.State() == domain.HoldActive:
		s.mu.Unlock()
		return domain.ErrHoldActive
	case s.selection.Len() == 0:
		s.mu.Unlock()
		return domain.ErrEmptySelection
	}

	seats := s.selection.Keys()
	s.inFlight = true
	if s.reload != nil {
		s.reload.Stop()
		s.reload = nil
	}
	s.mu.Unlock()

	grant, err := s.inventory.Hold(ctx, s.cfg.EventID, seats)
	if err == nil && (grant == nil || len(grant.Seats) == 0) {
		err = errors.New("inventory granted no seats")
	}

	if err != nil {
		return s.holdRejected(ctx, seats, err)
	}

	s.mu.Lock()
	s.inFlight = false
	now := s.clock.Now()

	if gerr := s.hold.Grant(grant.Seats, grant.HoldUntil); gerr != nil {
		// a reload resumed a hold while the request was out; the response wins
		s.hold.Resume(grant.Seats, grant.HoldUntil)
	}

	granted := s.hold.Seats()
	until := s.hold.HoldUntil()

	s.catalog.MarkHeld(granted, s.cfg.UserID, until)
	s.selection.Clear()
	s.startCountdownLocked()
	s.renderAllLocked(now)
	s.renderer.Notify("Seats held! Confirm your purchase before the hold expires.", domain.SeveritySuccess)
	s.mu.Unlock()

	if len(granted) < len(seats) {
		s.logger.Warn("hold narrowed by inventory", "requested", seats, "granted", granted)
	}
	s.logger.Info("hold granted", "seats", granted, "hold_until", until)

	outcome := s.newOutcome(domain.OutcomeHeld, granted, now)
	outcome.HoldUntil = &until
	s.journal(ctx, outcome)

	return nil
}

func (s *SyncController) holdRejected(ctx context.Context, seats []domain.SeatKey, cause error) error {
	s.mu.Lock()
	s.inFlight = false
	now := s.clock.Now()
	s.selection.Clear()
	s.renderer.Notify(failureMessage("Could not hold the selected seats.", cause), domain.SeverityDanger)
	s.renderSelectionLocked(now)
	s.mu.Unlock()

	s.logger.Warn("hold rejected", "seats", seats, "error", cause)

	outcome := s.newOutcome(domain.OutcomeRejected, seats, now)
	outcome.Reason = cause.Error()
	s.journal(ctx, outcome)

	if err := s.LoadCatalog(ctx); err != nil {
		s.logger.Warn("resync after rejected hold failed", "error", err)
	}

	return fmt.Errorf("%w: %w", domain.ErrHoldRejected, cause)
}

// RequestPurchase confirms the active hold. A failed purchase leaves the hold
// and its countdown running so the user can retry before expiry.
func (s *SyncController) RequestPurchase(ctx context.Context) ([]domain.Ticket, error) {
	s.mu.Lock()
	switch {
	case s.hold.State() == domain.HoldExpired:
		s.mu.Unlock()
		return nil, domain.ErrSessionExpired
	case s.inFlight:
		s.mu.Unlock()
		return nil, domain.ErrRequestInFlight
	case s.hold.State() != domain.HoldActive:
		s.mu.Unlock()
		return nil, domain.ErrNoActiveHold
	}

	seats := s.hold.Seats()
	gen := s.hold.Generation()
	s.inFlight = true
	s.mu.Unlock()

	tickets, err := s.inventory.Purchase(ctx, s.cfg.EventID, seats)

	s.mu.Lock()
	s.inFlight = false

	if err != nil {
		s.renderer.Notify(failureMessage("Could not complete the purchase.", err), domain.SeverityDanger)
		s.mu.Unlock()

		s.logger.Warn("purchase failed", "seats", seats, "error", err)
		return nil, fmt.Errorf("%w: %w", domain.ErrPurchaseFailed, err)
	}

	now := s.clock.Now()

	if s.hold.Generation() == gen || s.holdCoveredLocked(seats) {
		if _, cerr := s.hold.Confirm(); cerr == nil {
			s.stopCountdownLocked()
		}
	}

	s.catalog.MarkSold(seats, s.cfg.UserID)
	s.tickets = append(s.tickets, tickets...)
	s.renderAllLocked(now)
	s.renderer.ShowTickets(tickets)
	s.renderer.Notify("Purchase confirmed.", domain.SeveritySuccess)
	s.mu.Unlock()

	s.logger.Info("purchase confirmed", "seats", seats, "tickets", len(tickets))

	if s.ledger != nil {
		if lerr := s.ledger.SaveTickets(ctx, s.cfg.EventID, s.cfg.UserID, tickets); lerr != nil {
			s.logger.Warn("saving tickets failed", "error", lerr)
		}
	}

	outcome := s.newOutcome(domain.OutcomeConfirmed, seats, now)
	outcome.Tickets = tickets
	s.journal(ctx, outcome)

	return tickets, nil
}

// RequestRelease cancels the active hold. The release is best effort: the
// seats are freed locally whatever the inventory answers and a reload is
// scheduled to restore the authoritative view.
func (s *SyncController) RequestRelease(ctx context.Context) error {
	s.mu.Lock()
	switch {
	case s.hold.State() == domain.HoldExpired:
		s.mu.Unlock()
		return domain.ErrSessionExpired
	case s.inFlight:
		s.mu.Unlock()
		return domain.ErrRequestInFlight
	case s.hold.State() != domain.HoldActive:
		s.mu.Unlock()
		return domain.ErrNoActiveHold
	}

	seats := s.hold.Seats()
	gen := s.hold.Generation()
	s.inFlight = true
	s.mu.Unlock()

	err := s.inventory.Release(ctx, s.cfg.EventID, seats)

	s.mu.Lock()
	s.inFlight = false
	now := s.clock.Now()

	if s.hold.Generation() == gen {
		switch s.hold.State() {
		case domain.HoldActive:
			_, _ = s.hold.Cancel()
		case domain.HoldExpired:
			s.hold.Reset()
		}
		s.stopCountdownLocked()
	}

	s.catalog.MarkFree(seats)
	s.selection.Clear()
	s.renderAllLocked(now)
	s.renderer.Notify("Hold cancelled. The seats are available again.", domain.SeverityInfo)
	s.scheduleReloadLocked(s.cfg.ReleaseReloadDelay)
	s.mu.Unlock()

	outcome := s.newOutcome(domain.OutcomeCancelled, seats, now)
	if err != nil {
		s.logger.Warn("release not confirmed by inventory, resync scheduled", "seats", seats, "error", err)
		outcome.Reason = err.Error()
	} else {
		s.logger.Info("hold released", "seats", seats)
	}
	s.journal(ctx, outcome)

	return nil
}

// Close cancels every pending timer and the session context.
func (s *SyncController) Close() {
	s.mu.Lock()
	s.stopTimersLocked()
	s.mu.Unlock()
	s.cancel()
}

func (s *SyncController) HoldState() domain.HoldState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hold.State()
}

func (s *SyncController) HeldSeats() []domain.SeatKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hold.Seats()
}

func (s *SyncController) HoldUntil() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.hold.HoldUntil()
}

func (s *SyncController) Selection() []domain.SeatKey {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selection.Keys()
}

func (s *SyncController) Limit() domain.LimitStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.EvaluateLimit(s.catalog, s.selection, s.cfg.UserID, s.clock.Now(), s.cfg.MaxSeatsPerUser)
}

// Tickets lists the tickets issued in this session, or the saved wallet when
// a ledger is configured.
func (s *SyncController) Tickets(ctx context.Context) ([]domain.Ticket, error) {
	if s.ledger != nil {
		return s.ledger.ListTickets(ctx, s.cfg.EventID, s.cfg.UserID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.tickets), nil
}

// Redraw re-emits every render intent for the current state.
func (s *SyncController) Redraw() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.catalog.Loaded() {
		return
	}
	s.renderAllLocked(s.clock.Now())
}

// holdCoveredLocked reports whether every seat of the current hold was part
// of a purchase of seats.
func (s *SyncController) holdCoveredLocked(seats []domain.SeatKey) bool {
	state := s.hold.State()
	if state != domain.HoldActive && state != domain.HoldExpired {
		return false
	}

	held := s.hold.Seats()
	if len(held) == 0 {
		return false
	}
	for _, key := range held {
		if !slices.Contains(seats, key) {
			return false
		}
	}
	return true
}

func (s *SyncController) newOutcome(kind domain.OutcomeKind, seats []domain.SeatKey, at time.Time) domain.HoldOutcome {
	return domain.NewHoldOutcome(s.sessionID, s.cfg.EventID, s.cfg.UserID, kind, seats, at)
}

func (s *SyncController) journal(ctx context.Context, outcome domain.HoldOutcome) {
	if s.ledger != nil {
		if err := s.ledger.RecordOutcome(ctx, outcome); err != nil {
			s.logger.Warn("recording hold outcome failed", "kind", outcome.Kind, "error", err)
		}
	}

	if s.publisher != nil {
		if err := s.publisher.PublishOutcome(ctx, outcome); err != nil {
			s.logger.Warn("publishing hold outcome failed", "kind", outcome.Kind, "error", err)
		}
	}
}

func failureMessage(prefix string, err error) string {
	var msg interface{ UserMessage() string }
	if errors.As(err, &msg) && msg.UserMessage() != "" {
		return prefix + " " + msg.UserMessage()
	}
	return prefix
}
