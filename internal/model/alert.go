package model

// Alert reason strings are stable output vocabulary: downstream tooling keys
// on them. Reasons within one alert are sorted and ";"-joined for flat storage.

// DeviceAlert flags one (session, device) group of logs.
type DeviceAlert struct {
	ID        int    `json:"id" csv:"id"`
	SessionID int    `json:"session_id" csv:"session_id"`
	DeviceID  string `json:"device_id" csv:"device_id"`
	Reasons   string `json:"reasons" csv:"reasons"`
}

// IdentityAlert flags one (uid, device) group across the whole dataset.
// AllowClustering gates the UID's eligibility for the downstream grouping
// stage: false when the identity itself (not just a session) looks
// untrustworthy.
type IdentityAlert struct {
	ID                   int    `json:"id" csv:"id"`
	UID                  string `json:"uid" csv:"uid"`
	AllowClustering      bool   `json:"allow_clustering" csv:"allow_clustering"`
	DeviceID             string `json:"device_id" csv:"device_id"`
	NormalSessionsCount  int    `json:"normal_sessions_count" csv:"normal_sessions_count"`
	RepeatedAnomalyCount int    `json:"repeated_anomaly_count" csv:"repeated_anomaly_count"`
	AnomalySessions      string `json:"anomaly_sessions" csv:"anomaly_sessions"`
	Reasons              string `json:"reasons" csv:"reasons"`
}

// TimestampAlert flags one exact (uid, timestamp, session, device) check-in.
// The same UID can legitimately carry several of these across check-ins, so
// the key is the full tuple, never UID alone.
type TimestampAlert struct {
	ID        int    `json:"id" csv:"id"`
	UID       string `json:"uid" csv:"uid"`
	Timestamp string `json:"timestamp" csv:"timestamp"`
	SessionID int    `json:"session_id" csv:"session_id"`
	DeviceID  string `json:"device_id" csv:"device_id"`
	Reasons   string `json:"reasons" csv:"reasons"`
}
