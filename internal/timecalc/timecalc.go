package timecalc

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// ErrBadInstant is returned when a command-line timestamp matches none of the
// accepted layouts.
var ErrBadInstant = errors.New("invalid timestamp")

// wallClockLayouts are read as wall-clock time in the target location.
var wallClockLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// Interval is a [Since, Until) range in a single location.
type Interval struct {
	Since time.Time
	Until time.Time
}

// ParseInstant parses s in loc. Values without an offset get loc attached to
// their wall clock; RFC 3339 values keep their instant and are expressed in loc.
func ParseInstant(s string, loc *time.Location) (time.Time, error) {
	for _, layout := range wallClockLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, nil
		}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.In(loc), nil
	}
	return time.Time{}, fmt.Errorf("%w %q: expected YYYY-MM-DD, YYYY-MM-DDTHH:MM:SS or RFC 3339", ErrBadInstant, s)
}

// ResolveInterval fills in missing bounds: since defaults to the start of the
// day containing now, until defaults to now. Inverted ranges are kept as is.
func ResolveInterval(since, until *time.Time, now time.Time, loc *time.Location) Interval {
	now = now.In(loc)
	iv := Interval{Since: StartOfDay(now), Until: now}
	if since != nil {
		iv.Since = since.In(loc)
	}
	if until != nil {
		iv.Until = until.In(loc)
	}
	return iv
}

// DayInterval returns the whole calendar day containing t.
func DayInterval(t time.Time) Interval {
	return Interval{Since: StartOfDay(t), Until: EndOfDay(t)}
}

// DaysBetween returns the number of whole days from since to until, floored.
func DaysBetween(since, until time.Time) int {
	return int(math.Floor(until.Sub(since).Hours() / 24))
}

// FormatDurationHHMMSS formats seconds as HH:MM:SS.
func FormatDurationHHMMSS(seconds int64) string {
	h := seconds / 3600
	m := (seconds % 3600) / 60
	s := seconds % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}

// StartOfDay returns 00:00:00 of the same day.
func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// EndOfDay returns the last representable instant of the same day.
func EndOfDay(t time.Time) time.Time {
	return StartOfDay(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}
