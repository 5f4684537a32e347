package validate

import (
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/haldis/badgeflow/internal/model"
	"github.com/haldis/badgeflow/internal/timeutil"
)

// Timestamp alert reasons.
const (
	reasonOutsideTime = "Outside valid time range"
	reasonOutsideDate = "Outside valid date range"
	reasonOffDay      = "Weekend or holiday check-in"
)

// Schedule is the institution's operating schedule in parsed form.
type Schedule struct {
	DayStart      time.Duration // offset from midnight
	DayEnd        time.Duration
	SemesterStart time.Time
	SemesterEnd   time.Time
	hasSemester   bool
	holidays      map[string]struct{} // "2006-01-02" dates
}

// NewSchedule parses an operating schedule from its string form. Daily bounds
// default to 08:00–18:00 when empty; an empty semester range disables the
// date check.
func NewSchedule(startTime, endTime, semesterStart, semesterEnd string, holidays []string) (Schedule, error) {
	s := Schedule{
		DayStart: 8 * time.Hour,
		DayEnd:   18 * time.Hour,
		holidays: make(map[string]struct{}, len(holidays)),
	}

	if startTime != "" {
		tod, ok := timeutil.ParseTimeOfDay(startTime)
		if !ok {
			return Schedule{}, errors.Newf("schedule: bad start time %q", startTime)
		}
		s.DayStart = tod
	}
	if endTime != "" {
		tod, ok := timeutil.ParseTimeOfDay(endTime)
		if !ok {
			return Schedule{}, errors.Newf("schedule: bad end time %q", endTime)
		}
		s.DayEnd = tod
	}

	if semesterStart != "" && semesterEnd != "" {
		start, okS := timeutil.ParseDate(semesterStart)
		end, okE := timeutil.ParseDate(semesterEnd)
		if !okS || !okE {
			return Schedule{}, errors.Newf("schedule: bad semester range %q..%q", semesterStart, semesterEnd)
		}
		s.SemesterStart = start
		s.SemesterEnd = end
		s.hasSemester = true
	}

	for _, h := range holidays {
		if _, ok := timeutil.ParseDate(h); !ok {
			return Schedule{}, errors.Newf("schedule: bad holiday date %q", h)
		}
		s.holidays[h] = struct{}{}
	}
	return s, nil
}

// IsHoliday reports whether the given "2006-01-02" date is configured as a
// holiday.
func (s Schedule) IsHoliday(date string) bool {
	_, ok := s.holidays[date]
	return ok
}

// TimestampValidator checks every log entry against the operating schedule:
// daily window, semester range, weekends and holidays.
type TimestampValidator struct {
	sched Schedule
	log   *zap.SugaredLogger
}

// NewTimestamp creates a TimestampValidator.
func NewTimestamp(sched Schedule, log *zap.SugaredLogger) *TimestampValidator {
	return &TimestampValidator{sched: sched, log: log}
}

// Run produces one alert per exact (uid, timestamp, session, device) key with
// at least one triggered check, in first-occurrence order, IDs sequential
// from 1. The key is the full tuple: the same UID legitimately accumulates
// several timestamped alerts across distinct check-ins.
func (v *TimestampValidator) Run(sessions []model.Session) []model.TimestampAlert {
	type key struct {
		uid       string
		timestamp string
		sessionID int
		deviceID  string
	}
	var order []key
	grouped := make(map[key]reasonSet)

	for _, s := range sessions {
		date := s.LogsDate
		if s.ReceivedAt != nil {
			date = s.ReceivedAt.Date()
		}
		if date == "" {
			continue
		}

		for _, l := range s.Logs {
			ts, ok := timeutil.CombineDateTime(date, l.TS)
			if !ok {
				continue
			}

			reasons := v.check(ts)
			if len(reasons) == 0 {
				continue
			}

			k := key{
				uid:       l.UID,
				timestamp: ts.Format("2006-01-02T15:04:05"),
				sessionID: s.SessionID,
				deviceID:  s.DeviceID,
			}
			existing, seen := grouped[k]
			if !seen {
				existing = make(reasonSet)
				grouped[k] = existing
				order = append(order, k)
			}
			for r := range reasons {
				existing.add(r)
			}
		}
	}

	alerts := make([]model.TimestampAlert, 0, len(order))
	for i, k := range order {
		alerts = append(alerts, model.TimestampAlert{
			ID:        i + 1,
			UID:       k.uid,
			Timestamp: k.timestamp,
			SessionID: k.sessionID,
			DeviceID:  k.deviceID,
			Reasons:   grouped[k].join(),
		})
	}

	v.log.Infow("timestamp validation complete",
		"sessions", len(sessions), "alerts", len(alerts))
	return alerts
}

// check runs the three independent schedule checks against one absolute
// check-in instant.
func (v *TimestampValidator) check(ts time.Time) reasonSet {
	reasons := make(reasonSet)

	tod := time.Duration(ts.Hour())*time.Hour +
		time.Duration(ts.Minute())*time.Minute +
		time.Duration(ts.Second())*time.Second
	if tod < v.sched.DayStart || tod > v.sched.DayEnd {
		reasons.add(reasonOutsideTime)
	}

	if v.sched.hasSemester {
		date := time.Date(ts.Year(), ts.Month(), ts.Day(), 0, 0, 0, 0, time.UTC)
		if date.Before(v.sched.SemesterStart) || date.After(v.sched.SemesterEnd) {
			reasons.add(reasonOutsideDate)
		}
	}

	if wd := ts.Weekday(); wd == time.Saturday || wd == time.Sunday || v.sched.IsHoliday(ts.Format("2006-01-02")) {
		reasons.add(reasonOffDay)
	}
	return reasons
}
