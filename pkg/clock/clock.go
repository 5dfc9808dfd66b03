package clock

import "time"

// Clock abstracts the time source so daily-reset logic can be tested with a
// fixed or stepping clock.
type Clock interface {
	Now() time.Time
}

// System is the production clock backed by time.Now.
type System struct{}

func (System) Now() time.Time { return time.Now() }

// Fixed always returns the same instant. Tests advance it by replacing T.
type Fixed struct {
	T time.Time
}

func (f *Fixed) Now() time.Time { return f.T }

const DateFormat = "2006-01-02"

// DateString renders the calendar date of t in its own location.
func DateString(t time.Time) string {
	return t.Format(DateFormat)
}

// SameDay reports whether a and b fall on the same calendar day in a's
// location. Calendar equality, not a 24h-elapsed check, so it stays correct
// across DST transitions and short/long days.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// StartOfDay returns local midnight for the day containing t.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// NextMidnight returns the first instant of the day after t.
func NextMidnight(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1)
}

// UntilReset is the remaining duration from t until the next local midnight.
func UntilReset(t time.Time) time.Duration {
	return NextMidnight(t).Sub(t)
}
