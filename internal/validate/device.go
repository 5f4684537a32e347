package validate

import (
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/haldis/badgeflow/internal/model"
	"github.com/haldis/badgeflow/internal/timeutil"
)

// Device alert reasons.
const (
	reasonClockReset     = "Clock reset detected"
	reasonLongActivity   = "Device active unusually long without breaks"
	reasonMissingDevice  = "Missing device id"
	reasonMissingSession = "Missing session id"
	reasonMissingReceive = "Missing received_at datetime"
)

// DeviceConfig holds device-validation thresholds.
type DeviceConfig struct {
	// MaxSessionHours flags sessions whose logs span strictly more than this
	// many hours. A heuristic pending hardware-side enforcement; exactly at
	// the boundary is not flagged.
	MaxSessionHours float64
}

// DeviceValidator inspects per-device session logs for clock anomalies,
// missing identifiers, and excessively long continuous activity.
type DeviceValidator struct {
	cfg DeviceConfig
	log *zap.SugaredLogger
}

// NewDevice creates a DeviceValidator.
func NewDevice(cfg DeviceConfig, log *zap.SugaredLogger) *DeviceValidator {
	return &DeviceValidator{cfg: cfg, log: log}
}

// Run produces one alert per (session, device) group with at least one
// triggered check. Alert IDs are sequential from 1 in (session_id, device_id)
// order. Sessions without logs produce no group.
func (v *DeviceValidator) Run(sessions []model.Session) []model.DeviceAlert {
	type key struct {
		sessionID int
		deviceID  string
	}
	groups := make(map[key]reasonSet)

	maxSpan := time.Duration(v.cfg.MaxSessionHours * float64(time.Hour))

	for _, s := range sessions {
		if len(s.Logs) == 0 {
			continue
		}
		k := key{sessionID: s.SessionID, deviceID: s.DeviceID}
		reasons := groups[k]
		if reasons == nil {
			reasons = make(reasonSet)
			groups[k] = reasons
		}

		if s.DeviceID == "" {
			reasons.add(reasonMissingDevice)
		}
		if s.SessionID == 0 {
			reasons.add(reasonMissingSession)
		}
		if s.ReceivedAt == nil {
			reasons.add(reasonMissingReceive)
		}
		if s.ReceivedAt != nil && s.LogsDate != "" && s.ReceivedAt.Date() != s.LogsDate {
			reasons.add(reasonClockReset)
		}
		if span, ok := activitySpan(s.Logs); ok && span > maxSpan {
			reasons.add(reasonLongActivity)
		}
	}

	keys := make([]key, 0, len(groups))
	for k, reasons := range groups {
		if len(reasons) > 0 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].sessionID != keys[j].sessionID {
			return keys[i].sessionID < keys[j].sessionID
		}
		return keys[i].deviceID < keys[j].deviceID
	})

	alerts := make([]model.DeviceAlert, 0, len(keys))
	for i, k := range keys {
		alerts = append(alerts, model.DeviceAlert{
			ID:        i + 1,
			SessionID: k.sessionID,
			DeviceID:  k.deviceID,
			Reasons:   groups[k].join(),
		})
	}

	v.log.Infow("device validation complete",
		"sessions", len(sessions), "alerts", len(alerts))
	return alerts
}

// activitySpan measures the elapsed time between a group's earliest and
// latest log. Groups with fewer than two parsable entries have no defined
// duration and are exempt.
func activitySpan(logs []model.LogEntry) (time.Duration, bool) {
	var min, max time.Duration
	n := 0
	for _, l := range logs {
		tod, ok := timeutil.ParseTimeOfDay(l.TS)
		if !ok {
			continue
		}
		if n == 0 || tod < min {
			min = tod
		}
		if n == 0 || tod > max {
			max = tod
		}
		n++
	}
	if n < 2 {
		return 0, false
	}
	return max - min, true
}
