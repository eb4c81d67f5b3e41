package domain

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// TimeOfDay is a wall-clock time with no date or zone attached. It is stored
// in its own column so the owner's intended clock reading survives timezone
// and DST conversions of the due date.
type TimeOfDay struct {
	Hour   int
	Minute int
	Second int
}

// ParseTimeOfDay accepts "HH:mm" or "HH:mm:ss" on a 24-hour clock. A bare
// "HH:mm" is treated as "HH:mm:00".
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if !strings.Contains(s, ":") {
		return TimeOfDay{}, ErrInvalidTimeFormat
	}
	if strings.Count(s, ":") == 1 {
		s += ":00"
	}
	parsed, err := time.Parse("15:04:05", s)
	if err != nil {
		return TimeOfDay{}, ErrInvalidTimeFormat
	}
	return TimeOfDay{Hour: parsed.Hour(), Minute: parsed.Minute(), Second: parsed.Second()}, nil
}

// String renders the short "HH:mm" form used in notification bodies.
func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Value implements driver.Valuer for the postgres time column.
func (t TimeOfDay) Value() (driver.Value, error) {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second), nil
}

// Scan implements sql.Scanner. The postgres driver may hand back a time
// value or a raw "HH:mm:ss" string depending on the query path.
func (t *TimeOfDay) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		t.Hour, t.Minute, t.Second = v.Hour(), v.Minute(), v.Second()
		return nil
	case string:
		return t.scanString(v)
	case []byte:
		return t.scanString(string(v))
	}
	return fmt.Errorf("cannot scan %T into TimeOfDay", src)
}

func (t *TimeOfDay) scanString(s string) error {
	// Drop fractional seconds, if any
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return fmt.Errorf("cannot scan %q into TimeOfDay", s)
	}
	*t = parsed
	return nil
}

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(fmt.Sprintf("%02d:%02d:%02d", t.Hour, t.Minute, t.Second))
}

func (t *TimeOfDay) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
