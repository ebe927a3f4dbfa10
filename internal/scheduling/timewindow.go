package scheduling

import (
	"fmt"
	"time"
)

const (
	clockLayout   = "15:04:05"
	minutesPerDay = 24 * 60
)

// ParseClock converts a "15:04:05" wall-clock string to minutes since midnight.
func ParseClock(clock string) (int, error) {
	t, err := time.Parse(clockLayout, clock)
	if err != nil {
		return 0, fmt.Errorf("invalid clock time %q: %w", clock, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}

// mustClock is used on values that already passed boundary validation;
// a malformed value collapses to midnight rather than panicking mid-detection.
func mustClock(clock string) int {
	m, err := ParseClock(clock)
	if err != nil {
		return 0
	}
	return m
}

// Overlaps reports whether two wall-clock intervals overlap. An interval whose
// end precedes its start crosses midnight and is normalized by projecting the
// end into the next day. Identical intervals overlap; the comparison is
// symmetric.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	as, ae := mustClock(aStart), mustClock(aEnd)
	bs, be := mustClock(bStart), mustClock(bEnd)

	if ae < as {
		ae += minutesPerDay
	}
	if be < bs {
		be += minutesPerDay
	}

	return as < be && ae > bs
}

// DurationHours returns the length of a wall-clock interval in hours. A shift
// spanning midnight always yields a positive duration.
func DurationHours(start, end string) float64 {
	s, e := mustClock(start), mustClock(end)
	return float64((e-s+minutesPerDay)%minutesPerDay) / 60.0
}

// CrossesMidnight reports whether a shift's end time-of-day falls before its
// start, implying it spans into the next calendar day.
func CrossesMidnight(start, end string) bool {
	return mustClock(end) < mustClock(start)
}

// WeekBounds returns the Monday and Sunday of the ISO week containing date.
func WeekBounds(date time.Time) (time.Time, time.Time) {
	d := dateOnly(date)
	offset := (int(d.Weekday()) + 6) % 7 // Monday = 0
	monday := d.AddDate(0, 0, -offset)
	return monday, monday.AddDate(0, 0, 6)
}

// WeekdayKey returns the lowercase weekday name used as an availability key.
func WeekdayKey(date time.Time) string {
	switch date.Weekday() {
	case time.Monday:
		return "monday"
	case time.Tuesday:
		return "tuesday"
	case time.Wednesday:
		return "wednesday"
	case time.Thursday:
		return "thursday"
	case time.Friday:
		return "friday"
	case time.Saturday:
		return "saturday"
	default:
		return "sunday"
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDate(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}

// startDateTime anchors a shift's start time on its calendar date.
func startDateTime(date time.Time, start string) time.Time {
	return dateOnly(date).Add(time.Duration(mustClock(start)) * time.Minute)
}

// endDateTime anchors a shift's end time on its calendar date, projected into
// the next day when the shift crosses midnight.
func endDateTime(date time.Time, start, end string) time.Time {
	m := mustClock(end)
	if CrossesMidnight(start, end) {
		m += minutesPerDay
	}
	return dateOnly(date).Add(time.Duration(m) * time.Minute)
}
