package common

import "time"

// Clock supplies timestamps for manifest creation and collision renames.
// Injecting it keeps rollback and collision-handling tests deterministic.
type Clock interface {
	Now() time.Time
}

// SystemClock is the wall-clock Clock used outside of tests.
type SystemClock struct{}

// Now returns the current local time.
func (SystemClock) Now() time.Time {
	return time.Now()
}
