package session

import (
	"time"

	"github.com/haldis/badgeflow/internal/model"
	"github.com/haldis/badgeflow/internal/timeutil"
)

// dedupResult is one batch's log list after collapsing repeat scans.
type dedupResult struct {
	logs      []model.RawLog // first-occurrence order, earliest timestamp kept
	redundant map[string]int // UID -> removed duplicate count
}

// dedupBatch walks a batch's logs in original order, keyed by UID. The first
// scan of a UID is kept; every repeat bumps the UID's redundancy counter, and
// a repeat with a strictly earlier timestamp replaces the kept entry (the
// true scan moment is the first physical tap) and counts a second time.
func dedupBatch(logs []model.RawLog, loc *time.Location) dedupResult {
	type entry struct {
		log model.RawLog
		pos int
	}
	kept := make(map[string]*entry)
	var order []string
	redundant := make(map[string]int)

	for _, l := range logs {
		e, exists := kept[l.UID]
		if !exists {
			kept[l.UID] = &entry{log: l, pos: len(order)}
			order = append(order, l.UID)
			continue
		}

		redundant[l.UID]++
		if earlierTS(l.TS, e.log.TS, loc) {
			redundant[l.UID]++
			e.log = l
		}
	}

	result := dedupResult{redundant: redundant}
	if len(order) > 0 {
		result.logs = make([]model.RawLog, len(order))
		for _, uid := range order {
			e := kept[uid]
			result.logs[e.pos] = e.log
		}
	}
	return result
}

// earlierTS reports whether raw timestamp a is strictly earlier than b.
// Both sides parse in the common case; when either does not, raw string
// order decides so the outcome stays deterministic.
func earlierTS(a, b string, loc *time.Location) bool {
	ta, okA := timeutil.Parse(a, loc)
	tb, okB := timeutil.Parse(b, loc)
	if okA && okB {
		return ta.Before(tb)
	}
	return a < b
}

func sumCounts(m map[string]int) int {
	total := 0
	for _, n := range m {
		total += n
	}
	return total
}
