// Package calendar holds the facility calendar index used to enrich sessions
// with the events their scans fall inside.
package calendar

import (
	"strings"
	"time"

	"github.com/haldis/badgeflow/internal/timeutil"
)

// Event is one facility calendar entry, immutable once loaded. Start and End
// are facility-local wall times.
type Event struct {
	ID     string
	Title  string
	Detail string
	Start  time.Time
	End    time.Time
}

// SplitSummary splits a calendar summary of the form "Title - Detail" on the
// first separator. With no separator, title and detail are both the full
// summary.
func SplitSummary(summary string) (title, detail string) {
	if before, after, found := strings.Cut(summary, " - "); found {
		return before, after
	}
	return summary, summary
}

// Index answers interval-containment lookups over a loaded event list.
type Index struct {
	events []Event
}

// NewIndex builds an index over the given events. The slice is not copied;
// callers must not mutate it afterwards.
func NewIndex(events []Event) *Index {
	return &Index{events: events}
}

// Events returns the loaded event list.
func (ix *Index) Events() []Event {
	return ix.events
}

// Len returns the number of loaded events.
func (ix *Index) Len() int {
	return len(ix.events)
}

// Match returns the events whose [Start, End] interval contains at least one
// of the given instants. Each event appears at most once, in the order it was
// first matched.
func (ix *Index) Match(instants []time.Time) []Event {
	var matched []Event
	seen := make(map[string]struct{})

	for _, t := range instants {
		for _, ev := range ix.events {
			if _, ok := seen[ev.ID]; ok {
				continue
			}
			if timeutil.Contains(t, ev.Start, ev.End) {
				seen[ev.ID] = struct{}{}
				matched = append(matched, ev)
			}
		}
	}
	return matched
}
