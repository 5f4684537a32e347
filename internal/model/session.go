package model

// LogEntry is one deduplicated scan within a session. TS is the facility-local
// time-of-day ("HH:MM:SS"); the calendar date lives on the session.
type LogEntry struct {
	UID string `json:"uid"`
	TS  string `json:"ts"`
}

// MatchedEvent is a calendar event whose interval contained at least one of
// the session's scans. Title/Detail come from splitting the calendar summary
// on its first " - "; with no separator the two are equal.
type MatchedEvent struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Detail string   `json:"detail"`
	Start  WallTime `json:"start"`
	End    WallTime `json:"end"`
}

// Session is the pipeline's canonical output unit: one device batch after
// dedup, DST correction, and calendar enrichment.
//
// Invariants: UniqueCount == len(Logs); Logs is sorted ascending by
// time-of-day; every UID in Logs appears once.
type Session struct {
	SessionID     int            `json:"session_id"`
	DeviceID      string         `json:"device_id"`
	EventContext  string         `json:"event_context"`
	MatchedEvents []MatchedEvent `json:"matched_events"`
	ReceivedAt    *WallTime      `json:"received_at"`
	LogsDate      string         `json:"logs_date,omitempty"`
	RecordedCount int            `json:"recorded_count"`
	UniqueCount   int            `json:"unique_count"`
	RedundantUIDs map[string]int `json:"redundant_uids"`
	Logs          []LogEntry     `json:"logs"`
}
