package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSameDay(t *testing.T) {
	loc := time.FixedZone("UTC+2", 2*3600)

	morning := time.Date(2025, 3, 14, 0, 0, 1, 0, loc)
	night := time.Date(2025, 3, 14, 23, 59, 59, 0, loc)
	nextDay := time.Date(2025, 3, 15, 0, 0, 0, 0, loc)

	assert.True(t, SameDay(morning, night))
	assert.False(t, SameDay(night, nextDay))
}

func TestSameDayAcrossLocations(t *testing.T) {
	utc := time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC)
	// 23:30 UTC is already June 2nd in UTC+2; comparison happens in the
	// first argument's location.
	plus2 := utc.In(time.FixedZone("UTC+2", 2*3600))

	assert.True(t, SameDay(utc, utc))
	assert.False(t, SameDay(plus2, time.Date(2025, 6, 1, 12, 0, 0, 0, time.FixedZone("UTC+2", 2*3600))))
}

func TestUntilReset(t *testing.T) {
	loc := time.UTC
	at := time.Date(2025, 3, 14, 22, 0, 0, 0, loc)

	assert.Equal(t, 2*time.Hour, UntilReset(at))
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, loc), NextMidnight(at))
}

func TestFixedClock(t *testing.T) {
	f := &Fixed{T: time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)}
	assert.Equal(t, f.T, f.Now())

	f.T = f.T.AddDate(0, 0, 1)
	assert.Equal(t, "2025-01-02", DateString(f.Now()))
}
