// Package clock provides the wall clock used in production and a virtual
// clock that tests advance by hand.
package clock

import (
	"sync"
	"time"

	"github.com/srgjo27/seat_hold/internal/core/ports"
)

type realClock struct{}

func Real() ports.Clock {
	return realClock{}
}

func (realClock) Now() time.Time {
	return time.Now().UTC()
}

func (realClock) AfterFunc(d time.Duration, f func()) ports.Timer {
	return time.AfterFunc(d, f)
}

func (realClock) Every(interval time.Duration, f func()) ports.Timer {
	t := &ticker{done: make(chan struct{})}
	tk := time.NewTicker(interval)

	go func() {
		defer tk.Stop()
		for {
			select {
			case <-t.done:
				return
			case <-tk.C:
				f()
			}
		}
	}()

	return t
}

type ticker struct {
	once sync.Once
	done chan struct{}
}

func (t *ticker) Stop() bool {
	stopped := false
	t.once.Do(func() {
		close(t.done)
		stopped = true
	})
	return stopped
}
