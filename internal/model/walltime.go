package model

import (
	"time"

	"github.com/cockroachdb/errors"
)

// wallLayout is the serialization format for facility-local timestamps.
const wallLayout = "2006-01-02 15:04:05"

// WallTime is a facility-local wall-clock timestamp. It carries no zone offset:
// the value is civil time as read off the facility's clock. JSON form is
// "2006-01-02 15:04:05".
type WallTime struct {
	time.Time
}

// NewWallTime truncates t to second precision and strips its location.
func NewWallTime(t time.Time) WallTime {
	return WallTime{time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)}
}

// Date returns the calendar date portion, "YYYY-MM-DD".
func (w WallTime) Date() string {
	return w.Format("2006-01-02")
}

// TimeOfDay returns the clock portion, "HH:MM:SS".
func (w WallTime) TimeOfDay() string {
	return w.Format("15:04:05")
}

func (w WallTime) String() string {
	return w.Format(wallLayout)
}

// MarshalJSON encodes the wall time as a quoted "2006-01-02 15:04:05" string.
func (w WallTime) MarshalJSON() ([]byte, error) {
	return []byte(`"` + w.Format(wallLayout) + `"`), nil
}

// UnmarshalJSON decodes a quoted "2006-01-02 15:04:05" string.
func (w *WallTime) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return errors.Newf("wall time: not a JSON string: %s", s)
	}
	t, err := time.Parse(wallLayout, s[1:len(s)-1])
	if err != nil {
		return errors.Wrap(err, "wall time")
	}
	w.Time = t
	return nil
}
