// Package recurrence turns a reminder creation request into the ordered list
// of local occurrences to persist.
package recurrence

import (
	"strings"
	"time"

	"github.com/lucasrosa/lembretes-api/internal/domain"
)

// Occurrence counts per rule.
const (
	dailyCount   = 15
	weeklyCount  = 4
	monthlyCount = 3
	yearlyCount  = 2
)

// middayHour anchors reminders without an explicit time. Midday keeps the
// recovered local calendar date equal to the submitted one for any zone
// within twelve hours of UTC, DST included.
const middayHour = 12

// Anchor combines the calendar-date part of date with the time-of-day, or
// midday when none was given, as a wall-clock reading in loc. Any clock
// component carried by date is discarded.
func Anchor(date time.Time, tod *domain.TimeOfDay, loc *time.Location) time.Time {
	return at(date.Year(), date.Month(), date.Day(), tod, loc)
}

func at(year int, month time.Month, day int, tod *domain.TimeOfDay, loc *time.Location) time.Time {
	if tod != nil {
		return time.Date(year, month, day, tod.Hour, tod.Minute, tod.Second, 0, loc)
	}
	return time.Date(year, month, day, middayHour, 0, 0, 0, loc)
}

// Expand returns the ordered local occurrences for the given rule, starting
// at the anchor. Offsets are applied to the local anchor and the time-of-day
// is re-applied per occurrence, so the wall-clock reading stays stable even
// when the sequence crosses a DST shift. An empty rule yields the anchor
// alone; an unknown rule fails with domain.ErrInvalidRecurrence.
func Expand(anchor time.Time, tod *domain.TimeOfDay, rule string) ([]time.Time, error) {
	switch strings.ToLower(rule) {
	case "":
		return []time.Time{anchor}, nil
	case domain.RecurrenceDaily:
		return expandDays(anchor, tod, dailyCount, 1), nil
	case domain.RecurrenceWeekly:
		return expandDays(anchor, tod, weeklyCount, 7), nil
	case domain.RecurrenceMonthly:
		return expandMonths(anchor, tod, monthlyCount, 1), nil
	case domain.RecurrenceYearly:
		return expandMonths(anchor, tod, yearlyCount, 12), nil
	default:
		return nil, domain.ErrInvalidRecurrence
	}
}

func expandDays(anchor time.Time, tod *domain.TimeOfDay, count, stepDays int) []time.Time {
	occurrences := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		d := anchor.AddDate(0, 0, i*stepDays)
		occurrences = append(occurrences, at(d.Year(), d.Month(), d.Day(), tod, anchor.Location()))
	}
	return occurrences
}

// expandMonths steps in calendar months from the anchor, clamping the
// anchor's day-of-month to the last valid day of each target month:
// Jan 31 monthly yields Jan 31, Feb 28/29, Mar 31.
func expandMonths(anchor time.Time, tod *domain.TimeOfDay, count, stepMonths int) []time.Time {
	occurrences := make([]time.Time, 0, count)
	for i := 0; i < count; i++ {
		first := time.Date(anchor.Year(), anchor.Month()+time.Month(i*stepMonths), 1,
			0, 0, 0, 0, anchor.Location())
		day := anchor.Day()
		if last := first.AddDate(0, 1, -1).Day(); day > last {
			day = last
		}
		occurrences = append(occurrences, at(first.Year(), first.Month(), day, tod, anchor.Location()))
	}
	return occurrences
}
