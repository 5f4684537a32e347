package model

// RawLog is a single badge scan inside a device batch: who tapped, and when.
// TS is the device-reported timestamp string, unparsed.
type RawLog struct {
	UID string `json:"uid"`
	TS  string `json:"ts"`
}

// RawBatch is one device's periodic report of scan events, as transmitted.
// Count is the device-reported total; nil means the device omitted it and the
// builder falls back to a computed total. Consumed once by the session builder.
type RawBatch struct {
	DeviceID   string   `json:"device_id"`
	Count      *int     `json:"count"`
	ReceivedAt string   `json:"received_at"`
	Logs       []RawLog `json:"logs"`
}
