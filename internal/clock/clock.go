// Package clock abstracts time so tracking and ledger code stay deterministic in tests.
package clock

import "time"

// Clock returns the current time.
type Clock interface {
	Now() time.Time
}

// System reads the wall clock, including its monotonic reading.
type System struct{}

// Now returns time.Now.
func (System) Now() time.Time {
	return time.Now()
}
