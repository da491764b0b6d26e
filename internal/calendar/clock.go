package calendar

import "time"

// Clock supplies the shared "now" in Unix milliseconds. Live slices must
// re-derive their end from the same Clock on every tick rather than capture
// a timestamp, so all live blocks on screen advance in lockstep.
type Clock func() int64

// SystemClock reads the wall clock.
func SystemClock() int64 {
	return time.Now().UnixMilli()
}

// FixedClock returns a Clock pinned to ms, for tests and previews.
func FixedClock(ms int64) Clock {
	return func() int64 { return ms }
}
