package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStartOfDayAndEndOfDay(t *testing.T) {
	ts := time.Date(2025, 3, 15, 14, 45, 12, 500, time.UTC)

	start := StartOfDay(ts)
	assert.Equal(t, time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC), start)

	end := EndOfDay(ts)
	assert.Equal(t, 23, end.Hour())
	assert.Equal(t, 59, end.Minute())
	assert.True(t, end.After(ts))
	assert.Equal(t, start.Day(), end.Day())
}

func TestDayStringParseDayRoundTrip(t *testing.T) {
	day := "2025-01-31"
	parsed, err := ParseDay(day)
	require.NoError(t, err)
	assert.Equal(t, day, DayString(parsed))
}
