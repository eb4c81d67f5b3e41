// Package timezone converts between a user's local wall-clock time and UTC.
// Zone resolution is best-effort and never fails to the caller: an unknown
// identifier degrades through an ordered chain of candidates ending in a
// fixed UTC-3 offset.
package timezone

import "time"

// DefaultZone is used when a user has no timezone or an unresolvable one.
const DefaultZone = "America/Sao_Paulo"

// fallbackZone is the terminal candidate for hosts whose tz database cannot
// resolve even the default zone. São Paulo standard time, no DST.
var fallbackZone = time.FixedZone("-03", -3*60*60)

// Resolve returns the location for an IANA zone identifier. Candidates are
// tried in order: the requested zone (skipped when empty, the user never set
// one), then DefaultZone (requested zone unknown to the host), then the
// fixed offset, which always succeeds.
func Resolve(zoneID string) *time.Location {
	for _, candidate := range []string{zoneID, DefaultZone} {
		if candidate == "" {
			continue
		}
		if loc, err := time.LoadLocation(candidate); err == nil {
			return loc
		}
	}
	return fallbackZone
}

// ToUTC interprets the clock reading of local as wall-clock time in zoneID
// and returns the equivalent UTC instant.
func ToUTC(local time.Time, zoneID string) time.Time {
	loc := Resolve(zoneID)
	return time.Date(local.Year(), local.Month(), local.Day(),
		local.Hour(), local.Minute(), local.Second(), local.Nanosecond(), loc).UTC()
}

// FromUTC returns the wall-clock reading of instant in zoneID.
func FromUTC(instant time.Time, zoneID string) time.Time {
	return instant.In(Resolve(zoneID))
}

// UTCOffsetHours reports the zone's current offset from UTC in whole hours,
// for display purposes. Resolution failures yield -3.
func UTCOffsetHours(zoneID string) int {
	_, offset := time.Now().In(Resolve(zoneID)).Zone()
	return offset / 3600
}
