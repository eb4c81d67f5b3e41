package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimeOfDay(t *testing.T) {
	cases := []struct {
		input string
		want  TimeOfDay
	}{
		{"14:30", TimeOfDay{Hour: 14, Minute: 30}},
		{"9:30", TimeOfDay{Hour: 9, Minute: 30}},
		{"00:00", TimeOfDay{}},
		{"23:59:59", TimeOfDay{Hour: 23, Minute: 59, Second: 59}},
		{"09:30:15", TimeOfDay{Hour: 9, Minute: 30, Second: 15}},
	}
	for _, tc := range cases {
		got, err := ParseTimeOfDay(tc.input)
		require.NoError(t, err, "input %q", tc.input)
		assert.Equal(t, tc.want, got, "input %q", tc.input)
	}
}

func TestParseTimeOfDayRejectsInvalid(t *testing.T) {
	for _, input := range []string{"", "noon", "1430", "25:00", "12:61", "12:30:99"} {
		_, err := ParseTimeOfDay(input)
		assert.ErrorIs(t, err, ErrInvalidTimeFormat, "input %q", input)
	}
}

func TestTimeOfDayString(t *testing.T) {
	assert.Equal(t, "08:05", TimeOfDay{Hour: 8, Minute: 5, Second: 30}.String())
}

func TestTimeOfDayScan(t *testing.T) {
	t.Run("from time.Time", func(t *testing.T) {
		var tod TimeOfDay
		err := tod.Scan(time.Date(0, 1, 1, 14, 30, 5, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, TimeOfDay{Hour: 14, Minute: 30, Second: 5}, tod)
	})

	t.Run("from string with fractional seconds", func(t *testing.T) {
		var tod TimeOfDay
		err := tod.Scan("14:30:05.123456")
		require.NoError(t, err)
		assert.Equal(t, TimeOfDay{Hour: 14, Minute: 30, Second: 5}, tod)
	})

	t.Run("from bytes", func(t *testing.T) {
		var tod TimeOfDay
		err := tod.Scan([]byte("07:00:00"))
		require.NoError(t, err)
		assert.Equal(t, TimeOfDay{Hour: 7}, tod)
	})

	t.Run("unsupported type", func(t *testing.T) {
		var tod TimeOfDay
		assert.Error(t, tod.Scan(42))
	})
}

func TestTimeOfDayValue(t *testing.T) {
	v, err := TimeOfDay{Hour: 9, Minute: 5}.Value()
	require.NoError(t, err)
	assert.Equal(t, "09:05:00", v)
}

func TestTimeOfDayJSON(t *testing.T) {
	tod := TimeOfDay{Hour: 14, Minute: 30}
	data, err := tod.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"14:30:00"`, string(data))

	var back TimeOfDay
	require.NoError(t, back.UnmarshalJSON(data))
	assert.Equal(t, tod, back)
}
