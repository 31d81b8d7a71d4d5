package sessions

import "time"

// LocalDateTime is the wall-clock reading of an instant inside a time zone
type LocalDateTime struct {
	Year   int
	Month  time.Month
	Day    int
	Hour   int
	Minute int
	Second int
}

// asUTC reads the wall clock as if it were UTC, which lets two readings be
// compared as plain instants.
func (l LocalDateTime) asUTC() time.Time {
	return time.Date(l.Year, l.Month, l.Day, l.Hour, l.Minute, l.Second, 0, time.UTC)
}

// ResolveLocalCalendarDate returns the wall-clock components instant has in loc
func ResolveLocalCalendarDate(instant time.Time, loc *time.Location) LocalDateTime {
	local := instant.In(loc)
	return LocalDateTime{
		Year:   local.Year(),
		Month:  local.Month(),
		Day:    local.Day(),
		Hour:   local.Hour(),
		Minute: local.Minute(),
		Second: local.Second(),
	}
}

// ProjectLocalTimeToInstant returns the instant at which the wall clock in
// loc reads the given date and time.
//
// The offset of a zone depends on the instant itself, so the wall time is
// first read as UTC, formatted back through loc, and the guess is corrected
// by the drift between the two readings. A second pass covers guesses that
// landed on the other side of a DST transition from the answer. Wall times
// inside a spring-forward gap have no instant and resolve to a neighbour.
func ProjectLocalTimeToInstant(year int, month time.Month, day, hour, minute int, loc *time.Location) time.Time {
	want := time.Date(year, month, day, hour, minute, 0, 0, time.UTC)

	instant := want
	for pass := 0; pass < 2; pass++ {
		drift := ResolveLocalCalendarDate(instant, loc).asUTC().Sub(want)
		if drift == 0 {
			break
		}
		instant = instant.Add(-drift)
	}

	return instant
}

// IsWeekend reports whether instant falls on a Saturday or Sunday in loc
func IsWeekend(instant time.Time, loc *time.Location) bool {
	switch instant.In(loc).Weekday() {
	case time.Saturday, time.Sunday:
		return true
	}
	return false
}

// minutesUntil floors the distance from a to b to whole minutes, never negative
func minutesUntil(a, b time.Time) int {
	d := b.Sub(a)
	if d <= 0 {
		return 0
	}
	return int(d / time.Minute)
}
