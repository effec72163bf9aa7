package domain

import "time"

type LimitLevel string

const (
	LimitNormal  LimitLevel = "normal"
	LimitWarning LimitLevel = "warning"
	LimitReached LimitLevel = "reached"
)

// LimitStatus is the per-user seat budget at one instant.
type LimitStatus struct {
	Owned     int
	Selected  int
	Max       int
	Remaining int
	Level     LimitLevel
}

func (l LimitStatus) Used() int {
	return l.Owned + l.Selected
}

// EvaluateLimit is a pure function of its inputs; ownership is recounted from
// the catalog on every call.
func EvaluateLimit(catalog *SeatCatalog, selection *SelectionSet, user UserID, now time.Time, max int) LimitStatus {
	owned := catalog.CountOwnedByUser(user, now)
	selected := selection.Len()
	remaining := max - (owned + selected)

	level := LimitNormal
	switch {
	case remaining <= 0:
		level = LimitReached
	case remaining <= 2 && max > 2:
		level = LimitWarning
	}

	return LimitStatus{
		Owned:     owned,
		Selected:  selected,
		Max:       max,
		Remaining: remaining,
		Level:     level,
	}
}

// CheckSelectionGate fails with *LimitExceededError when one more seat would
// exceed max.
func CheckSelectionGate(catalog *SeatCatalog, selection *SelectionSet, user UserID, now time.Time, max int) error {
	owned := catalog.CountOwnedByUser(user, now)
	selected := selection.Len()

	if owned+selected+1 > max {
		return &LimitExceededError{Owned: owned, Selected: selected, Max: max}
	}

	return nil
}
