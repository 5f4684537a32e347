// Package session reconstructs raw device batches into clean, calendar-aware
// attendance sessions: dedup, DST-corrected normalization, assembly, and
// calendar enrichment.
package session

import (
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/haldis/badgeflow/internal/calendar"
	"github.com/haldis/badgeflow/internal/model"
	"github.com/haldis/badgeflow/internal/timeutil"
)

// Builder turns raw batches into the canonical session list. It is the sole
// producer of sessions; validators only ever read its finished output.
type Builder struct {
	loc   *time.Location
	index *calendar.Index
	log   *zap.SugaredLogger
}

// NewBuilder creates a Builder for the given facility zone and calendar index.
func NewBuilder(loc *time.Location, index *calendar.Index, log *zap.SugaredLogger) *Builder {
	return &Builder{loc: loc, index: index, log: log}
}

// Build processes every batch in input order. Session IDs are sequential from
// 1. A batch with zero logs still yields a session; a log whose timestamp
// does not parse is dropped from the session with a warning, never fatal.
func (b *Builder) Build(batches []model.RawBatch) []model.Session {
	sessions := make([]model.Session, 0, len(batches))
	totalRedundant := 0

	for i, batch := range batches {
		d := dedupBatch(batch.Logs, b.loc)
		totalRedundant += sumCounts(d.redundant)

		s := b.assemble(i+1, batch, d)
		b.enrich(&s)
		sessions = append(sessions, s)
	}

	b.log.Infow("sessions built",
		"batches", len(batches),
		"sessions", len(sessions),
		"redundant_logs", totalRedundant)
	return sessions
}

// assemble normalizes the deduplicated logs into a session: DST-corrected
// local times, session dating, counts, and time-of-day sort order.
func (b *Builder) assemble(id int, batch model.RawBatch, d dedupResult) model.Session {
	logs := make([]model.LogEntry, 0, len(d.logs))
	var dates []string

	for _, raw := range d.logs {
		wall, ok := timeutil.AdjustDST(raw.TS, b.loc)
		if !ok {
			b.log.Warnw("unparsable log timestamp, dropping entry",
				"device_id", batch.DeviceID, "uid", raw.UID, "ts", raw.TS)
			continue
		}
		w := model.NewWallTime(wall)
		dates = append(dates, w.Date())
		logs = append(logs, model.LogEntry{UID: raw.UID, TS: w.TimeOfDay()})
	}

	// "HH:MM:SS" sorts lexicographically in time order.
	sort.Slice(logs, func(i, j int) bool { return logs[i].TS < logs[j].TS })

	logsDate := ""
	for _, d := range dates {
		if logsDate == "" || d < logsDate {
			logsDate = d
		}
	}

	var receivedAt *model.WallTime
	if t, ok := timeutil.Parse(batch.ReceivedAt, b.loc); ok {
		w := model.NewWallTime(t)
		receivedAt = &w
	}

	recorded := len(logs) + sumCounts(d.redundant)
	if batch.Count != nil {
		recorded = *batch.Count
	}

	return model.Session{
		SessionID:     id,
		DeviceID:      batch.DeviceID,
		MatchedEvents: []model.MatchedEvent{},
		ReceivedAt:    receivedAt,
		LogsDate:      logsDate,
		RecordedCount: recorded,
		UniqueCount:   len(logs),
		RedundantUIDs: d.redundant,
		Logs:          logs,
	}
}

// enrich attaches calendar events whose interval contains at least one of the
// session's scans. Reference date prefers received_at, falling back to the
// logs-derived date; with neither, enrichment is skipped entirely.
func (b *Builder) enrich(s *model.Session) {
	date := s.LogsDate
	if s.ReceivedAt != nil {
		date = s.ReceivedAt.Date()
	}
	if len(s.Logs) == 0 || b.index.Len() == 0 || date == "" {
		return
	}

	instants := make([]time.Time, 0, len(s.Logs))
	for _, l := range s.Logs {
		if t, ok := timeutil.CombineDateTime(date, l.TS); ok {
			instants = append(instants, t)
		}
	}

	matched := b.index.Match(instants)
	if len(matched) == 0 {
		return
	}

	var titles []string
	seenTitles := make(map[string]struct{})
	for _, ev := range matched {
		s.MatchedEvents = append(s.MatchedEvents, model.MatchedEvent{
			ID:     ev.ID,
			Title:  ev.Title,
			Detail: ev.Detail,
			Start:  model.NewWallTime(ev.Start),
			End:    model.NewWallTime(ev.End),
		})
		if _, ok := seenTitles[ev.Title]; !ok {
			seenTitles[ev.Title] = struct{}{}
			titles = append(titles, ev.Title)
		}
	}
	s.EventContext = strings.Join(titles, ", ")
}
