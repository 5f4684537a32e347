// Package icsfile loads the facility calendar from an ICS file.
package icsfile

import (
	"context"
	"os"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/haldis/badgeflow/internal/calendar"
	"github.com/haldis/badgeflow/internal/storage"
)

// Reader parses calendar.Event records out of an ICS file, normalizing event
// times into the facility zone's wall clock.
type Reader struct {
	path string
	loc  *time.Location
	log  *zap.SugaredLogger
}

// NewReader creates a Reader for the given path and facility zone.
func NewReader(path string, loc *time.Location, log *zap.SugaredLogger) *Reader {
	return &Reader{path: path, loc: loc, log: log}
}

// ReadEvents parses the full calendar in file order. A missing file is
// storage.ErrMissingInput. Events without parsable start/end times are
// skipped with a warning rather than failing the load.
func (r *Reader) ReadEvents(_ context.Context) ([]calendar.Event, error) {
	f, err := os.Open(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrapf(storage.ErrMissingInput, "calendar %s", r.path)
		}
		return nil, errors.Wrapf(err, "open %s", r.path)
	}
	defer f.Close()

	cal, err := ics.ParseCalendar(f)
	if err != nil {
		return nil, errors.Wrapf(err, "parse ics %s", r.path)
	}

	var events []calendar.Event
	for _, ve := range cal.Events() {
		start, err := ve.GetStartAt()
		if err != nil {
			r.log.Warnw("calendar event without parsable start, skipping", "id", ve.Id())
			continue
		}
		end, err := ve.GetEndAt()
		if err != nil {
			r.log.Warnw("calendar event without parsable end, skipping", "id", ve.Id())
			continue
		}

		summary := ""
		if p := ve.GetProperty(ics.ComponentPropertySummary); p != nil {
			summary = p.Value
		}
		title, detail := calendar.SplitSummary(summary)

		events = append(events, calendar.Event{
			ID:     ve.Id(),
			Title:  title,
			Detail: detail,
			Start:  wall(start, r.loc),
			End:    wall(end, r.loc),
		})
	}
	return events, nil
}

// wall converts an instant into the facility zone and keeps only its civil
// fields; all interval matching downstream is wall-clock comparison.
func wall(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
