package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAndRender(t *testing.T) {
	tod, err := Parse("06:30")
	require.NoError(t, err)
	assert.Equal(t, "06:30", tod.HHMM())

	tod, err = Parse("23:59:59")
	require.NoError(t, err)
	assert.Equal(t, "23:59", tod.HHMM())

	_, err = Parse("25:00")
	assert.Error(t, err)
}

func TestAddMinutesWrapsMidnight(t *testing.T) {
	tod, _ := Parse("23:50")
	assert.Equal(t, "00:05", tod.AddMinutes(15).HHMM())
}

func TestAddMinutesFractional(t *testing.T) {
	tod, _ := Parse("06:00")
	assert.Equal(t, "06:07", tod.AddMinutes(7.4).HHMM())
}

func TestOnPinsDate(t *testing.T) {
	tod, _ := Parse("06:30")
	date := time.Date(2026, 3, 12, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, time.Date(2026, 3, 12, 6, 30, 0, 0, time.UTC), tod.On(date))
}

func TestScanVariants(t *testing.T) {
	var tod Tod
	require.NoError(t, tod.Scan("07:15:30"))
	assert.Equal(t, "07:15", tod.HHMM())

	require.NoError(t, tod.Scan([]byte("08:00")))
	assert.Equal(t, "08:00", tod.HHMM())

	require.NoError(t, tod.Scan(time.Date(0, 1, 1, 9, 45, 0, 0, time.UTC)))
	assert.Equal(t, "09:45", tod.HHMM())
}

func TestValue(t *testing.T) {
	tod, _ := Parse("06:30")
	v, err := tod.Value()
	require.NoError(t, err)
	assert.Equal(t, "06:30:00", v)
}
