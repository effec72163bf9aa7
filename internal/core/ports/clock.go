package ports

import "time"

// Timer is the cancellation handle of a scheduled callback.
type Timer interface {
	Stop() bool
}

type Clock interface {
	Now() time.Time
	AfterFunc(d time.Duration, f func()) Timer
	// Every calls f once per interval until the returned Timer is stopped.
	Every(interval time.Duration, f func()) Timer
}
