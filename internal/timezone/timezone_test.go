package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Run("known zone", func(t *testing.T) {
		loc := Resolve("Europe/Lisbon")
		assert.Equal(t, "Europe/Lisbon", loc.String())
	})

	t.Run("empty falls back to default", func(t *testing.T) {
		loc := Resolve("")
		assert.Equal(t, DefaultZone, loc.String())
	})

	t.Run("unknown falls back to default", func(t *testing.T) {
		loc := Resolve("Mars/Olympus_Mons")
		assert.Equal(t, DefaultZone, loc.String())
	})
}

func TestToUTC(t *testing.T) {
	// São Paulo has been fixed at UTC-3 since 2019
	local := time.Date(2024, 6, 10, 12, 0, 0, 0, time.UTC)
	got := ToUTC(local, "America/Sao_Paulo")
	assert.Equal(t, time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC), got)
}

func TestToUTCReinterpretsWallClock(t *testing.T) {
	// The clock reading is what matters, not the zone the input carries
	est, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	local := time.Date(2024, 6, 10, 12, 0, 0, 0, est)
	got := ToUTC(local, "America/Sao_Paulo")
	assert.Equal(t, time.Date(2024, 6, 10, 15, 0, 0, 0, time.UTC), got)
}

func TestRoundTripAcrossDST(t *testing.T) {
	// Zones with DST keep the wall-clock reading through a round trip on
	// both sides of the transition
	dates := []time.Time{
		time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC),  // day before US spring forward
		time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC), // transition day
		time.Date(2024, 11, 3, 12, 0, 0, 0, time.UTC), // fall back day
	}
	for _, d := range dates {
		utc := ToUTC(d, "America/New_York")
		back := FromUTC(utc, "America/New_York")
		assert.Equal(t, d.Year(), back.Year())
		assert.Equal(t, d.Month(), back.Month())
		assert.Equal(t, d.Day(), back.Day())
		assert.Equal(t, 12, back.Hour(), "wall clock drifted for %s", d)
	}
}

func TestUTCOffsetHours(t *testing.T) {
	assert.Equal(t, -3, UTCOffsetHours("America/Sao_Paulo"))
	assert.Equal(t, 0, UTCOffsetHours("UTC"))
	// unresolvable zones degrade to the São Paulo offset
	assert.Equal(t, -3, UTCOffsetHours("Not/A_Zone"))
}
