package tz

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvert_JohannesburgToUTC(t *testing.T) {
	conv := NewConverter(zerolog.Nop())
	require.NoError(t, conv.SetZone("UTC"))

	// 22:00 in Johannesburg (UTC+2) is 20:00 UTC the same day.
	date, clock := conv.Convert("2025-09-02", "22:00", "Africa/Johannesburg")
	assert.Equal(t, "2025-09-02", date)
	assert.Equal(t, "20:00", clock)
}

func TestConvert_DateRollover(t *testing.T) {
	conv := NewConverter(zerolog.Nop())
	require.NoError(t, conv.SetZone("UTC"))

	// 06:00 on the 3rd in Johannesburg is 04:00 UTC, still the 3rd; but
	// 01:00 in Johannesburg rolls back to 23:00 UTC on the previous day.
	date, clock := conv.Convert("2025-09-03", "01:00", "Africa/Johannesburg")
	assert.Equal(t, "2025-09-02", date)
	assert.Equal(t, "23:00", clock)
}

func TestConvert_RoundTrip(t *testing.T) {
	toUTC := NewConverter(zerolog.Nop())
	require.NoError(t, toUTC.SetZone("UTC"))
	back := NewConverter(zerolog.Nop())
	require.NoError(t, back.SetZone("Africa/Johannesburg"))

	date, clock := toUTC.Convert("2025-09-02", "22:00", "Africa/Johannesburg")
	origDate, origClock := back.Convert(date, clock, "UTC")

	assert.Equal(t, "2025-09-02", origDate)
	assert.Equal(t, "22:00", origClock)
}

func TestConvert_InvalidSourceZoneFallsBack(t *testing.T) {
	conv := NewConverter(zerolog.Nop())

	date, clock := conv.Convert("2025-09-02", "22:00", "Not/AZone")
	assert.Equal(t, "2025-09-02", date)
	assert.Equal(t, "22:00", clock)
}

func TestConvert_MalformedTimeFallsBack(t *testing.T) {
	conv := NewConverter(zerolog.Nop())

	date, clock := conv.Convert("2025-09-02", "25:99", "UTC")
	assert.Equal(t, "2025-09-02", date)
	assert.Equal(t, "25:99", clock)
}

func TestSetZone_RejectsUnknown(t *testing.T) {
	conv := NewConverter(zerolog.Nop())

	err := conv.SetZone("Not/AZone")
	require.Error(t, err)
	assert.Equal(t, DefaultZone, conv.Zone())

	require.NoError(t, conv.SetZone("Europe/London"))
	assert.Equal(t, "Europe/London", conv.Zone())
}

func TestMinutesOfDay(t *testing.T) {
	tests := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"00:00", 0, true},
		{"09:30", 570, true},
		{"23:59", 1439, true},
		{"24:00", 0, false},
		{"12:60", 0, false},
		{"noon", 0, false},
		{"", 0, false},
	}
	for _, tt := range tests {
		got, ok := MinutesOfDay(tt.in)
		assert.Equal(t, tt.wantOK, ok, "MinutesOfDay(%q) ok", tt.in)
		assert.Equal(t, tt.want, got, "MinutesOfDay(%q)", tt.in)
	}
}

func TestNextDay(t *testing.T) {
	assert.Equal(t, "2025-09-03", NextDay("2025-09-02"))
	assert.Equal(t, "2025-10-01", NextDay("2025-09-30"))
	assert.Equal(t, "not-a-date", NextDay("not-a-date"))
}
