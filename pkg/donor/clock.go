package donor

import "time"

// Clock supplies the evaluation date. Using an interface keeps the
// date-difference and future-date checks deterministic under test.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the current wall-clock time.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now().UTC() }
