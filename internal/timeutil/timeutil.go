// Package timeutil parses device-reported timestamps and normalizes them to
// facility-local wall-clock time, including the one-hour correction for
// devices whose clocks do not follow daylight saving.
package timeutil

import (
	"time"
	_ "time/tzdata" // facility zone must resolve even without system zoneinfo
)

// layouts accepted from device batches, most specific first. Offset-aware
// forms are converted into the facility zone; naive forms are taken as
// already-local wall time.
var offsetLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
}

var naiveLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Parse converts a raw timestamp string into facility-local wall-clock time,
// truncated to whole seconds. The returned time carries no meaningful
// location; only its civil fields matter. ok is false when no layout matches.
func Parse(s string, loc *time.Location) (time.Time, bool) {
	for _, layout := range offsetLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return stripWall(t.In(loc)), true
	}
	for _, layout := range naiveLayouts {
		t, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		return stripWall(t), true
	}
	return time.Time{}, false
}

// AdjustDST parses s and applies the fixed-offset device heuristic: a device
// clock set during summer does not fall back in winter, so a reading whose
// local interpretation lands outside the daylight-saving period is treated as
// a summer-offset reading taken in winter and shifted back one hour. Readings
// inside the daylight-saving period pass through unchanged.
func AdjustDST(s string, loc *time.Location) (time.Time, bool) {
	wall, ok := Parse(s, loc)
	if !ok {
		return time.Time{}, false
	}
	return CorrectWall(wall, loc), true
}

// CorrectWall applies the backward-hour shift to an already-parsed wall time.
// The wall time is re-interpreted in loc to decide whether daylight saving
// was active at that civil moment.
func CorrectWall(wall time.Time, loc *time.Location) time.Time {
	local := time.Date(wall.Year(), wall.Month(), wall.Day(),
		wall.Hour(), wall.Minute(), wall.Second(), 0, loc)
	if local.IsDST() {
		return wall
	}
	return wall.Add(-time.Hour)
}

// CombineDateTime joins a "2006-01-02" date with a "15:04:05" time-of-day
// into a single wall time.
func CombineDateTime(date, tod string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02 15:04:05", date+" "+tod)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseTimeOfDay returns a "15:04:05" string as an offset from midnight.
func ParseTimeOfDay(s string) (time.Duration, bool) {
	t, err := time.Parse("15:04:05", s)
	if err != nil {
		return 0, false
	}
	return time.Duration(t.Hour())*time.Hour +
		time.Duration(t.Minute())*time.Minute +
		time.Duration(t.Second())*time.Second, true
}

// ParseDate parses a bare "2006-01-02" date.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Contains reports whether t lies inside [start, end], inclusive on both ends.
func Contains(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// stripWall discards sub-second precision and the location, keeping only the
// civil fields. All comparisons downstream are wall-clock comparisons.
func stripWall(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
