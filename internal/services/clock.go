package services

import (
	"time"
)

// Clock supplies "now" in the application timezone. Streak, badge and
// rotation logic all read time through it so tests can pin dates.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type realClock struct {
	loc *time.Location
}

// NewClock returns a wall clock fixed to the named timezone. An empty or
// unknown name falls back to Asia/Seoul, the deployment's home timezone.
func NewClock(timezone string) Clock {
	loc, err := time.LoadLocation(timezone)
	if timezone == "" || err != nil {
		loc, err = time.LoadLocation("Asia/Seoul")
		if err != nil {
			loc = time.FixedZone("KST", 9*60*60)
		}
	}
	return &realClock{loc: loc}
}

func (c *realClock) Now() time.Time           { return time.Now().In(c.loc) }
func (c *realClock) Location() *time.Location { return c.loc }

// fixedClock is the test clock.
type fixedClock struct {
	now time.Time
}

func NewFixedClock(now time.Time) Clock {
	return &fixedClock{now: now}
}

func (c *fixedClock) Now() time.Time           { return c.now }
func (c *fixedClock) Location() *time.Location { return c.now.Location() }

// DayOfYear returns the 1-based ordinal day for the clock's current date.
func DayOfYear(c Clock) int {
	return c.Now().YearDay()
}

// StartOfDay truncates t to midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DateString formats t as the calendar date (YYYY-MM-DD) used for
// assignment natural keys and report boundaries.
func DateString(t time.Time) string {
	return t.Format("2006-01-02")
}
