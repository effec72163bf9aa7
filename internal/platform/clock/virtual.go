package clock

import (
	"sort"
	"sync"
	"time"

	"github.com/srgjo27/seat_hold/internal/core/ports"
)

// Virtual is a manually advanced clock. Callbacks run synchronously on the
// goroutine calling Advance, in due-time order.
type Virtual struct {
	mu     sync.Mutex
	now    time.Time
	seq    uint64
	timers []*virtualTimer
}

type virtualTimer struct {
	clock    *Virtual
	id       uint64
	at       time.Time
	interval time.Duration
	f        func()
	stopped  bool
}

func NewVirtual(start time.Time) *Virtual {
	return &Virtual{now: start.UTC()}
}

func (v *Virtual) Now() time.Time {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.now
}

func (v *Virtual) AfterFunc(d time.Duration, f func()) ports.Timer {
	return v.schedule(d, 0, f)
}

func (v *Virtual) Every(interval time.Duration, f func()) ports.Timer {
	return v.schedule(interval, interval, f)
}

func (v *Virtual) schedule(d, interval time.Duration, f func()) *virtualTimer {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.seq++
	t := &virtualTimer{clock: v, id: v.seq, at: v.now.Add(d), interval: interval, f: f}
	v.timers = append(v.timers, t)
	return t
}

// Pending reports how many timers are still scheduled.
func (v *Virtual) Pending() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return len(v.timers)
}

// Advance moves time forward by d, firing every timer that falls due.
func (v *Virtual) Advance(d time.Duration) {
	v.mu.Lock()
	target := v.now.Add(d)
	v.mu.Unlock()

	for {
		v.mu.Lock()
		t := v.nextDue(target)
		if t == nil {
			v.now = target
			v.mu.Unlock()
			return
		}

		v.now = t.at
		if t.interval > 0 {
			t.at = t.at.Add(t.interval)
		} else {
			v.remove(t)
		}
		f := t.f
		v.mu.Unlock()

		f()
	}
}

func (v *Virtual) nextDue(target time.Time) *virtualTimer {
	sort.SliceStable(v.timers, func(i, j int) bool {
		if v.timers[i].at.Equal(v.timers[j].at) {
			return v.timers[i].id < v.timers[j].id
		}
		return v.timers[i].at.Before(v.timers[j].at)
	})

	if len(v.timers) == 0 || v.timers[0].at.After(target) {
		return nil
	}
	return v.timers[0]
}

func (v *Virtual) remove(t *virtualTimer) {
	for i, other := range v.timers {
		if other == t {
			v.timers = append(v.timers[:i], v.timers[i+1:]...)
			return
		}
	}
}

func (t *virtualTimer) Stop() bool {
	v := t.clock
	v.mu.Lock()
	defer v.mu.Unlock()

	if t.stopped {
		return false
	}
	t.stopped = true

	for _, other := range v.timers {
		if other == t {
			v.remove(t)
			return true
		}
	}
	return false
}
