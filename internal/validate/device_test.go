package validate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haldis/badgeflow/internal/logging"
	"github.com/haldis/badgeflow/internal/model"
)

func wt(t *testing.T, s string) *model.WallTime {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04:05", s)
	require.NoError(t, err)
	w := model.NewWallTime(parsed)
	return &w
}

func deviceSession(id int, deviceID string, receivedAt *model.WallTime, logsDate string, times ...string) model.Session {
	logs := make([]model.LogEntry, len(times))
	for i, ts := range times {
		logs[i] = model.LogEntry{UID: "a1b2c3d4", TS: ts}
	}
	return model.Session{
		SessionID:   id,
		DeviceID:    deviceID,
		ReceivedAt:  receivedAt,
		LogsDate:    logsDate,
		Logs:        logs,
		UniqueCount: len(logs),
	}
}

func newDevice(t *testing.T) *DeviceValidator {
	t.Helper()
	return NewDevice(DeviceConfig{MaxSessionHours: 11}, logging.Nop())
}

func TestDeviceCleanSession(t *testing.T) {
	v := newDevice(t)
	sessions := []model.Session{
		deviceSession(1, "D1", wt(t, "2024-05-02 18:00:00"), "2024-05-02", "09:00:00", "10:00:00"),
	}
	assert.Empty(t, v.Run(sessions))
}

func TestDeviceClockReset(t *testing.T) {
	v := newDevice(t)
	sessions := []model.Session{
		deviceSession(1, "D1", wt(t, "2024-05-03 01:00:00"), "2024-05-02", "09:00:00"),
	}
	alerts := v.Run(sessions)
	require.Len(t, alerts, 1)
	assert.Equal(t, 1, alerts[0].ID)
	assert.Equal(t, 1, alerts[0].SessionID)
	assert.Equal(t, "D1", alerts[0].DeviceID)
	assert.Equal(t, "Clock reset detected", alerts[0].Reasons)
}

func TestDeviceLongActivityBoundary(t *testing.T) {
	v := newDevice(t)

	// Exactly 11h00m00s: not flagged.
	atThreshold := deviceSession(1, "D1", wt(t, "2024-05-02 21:00:00"), "2024-05-02",
		"08:00:00", "19:00:00")
	assert.Empty(t, v.Run([]model.Session{atThreshold}))

	// One second over: flagged.
	overThreshold := deviceSession(1, "D1", wt(t, "2024-05-02 21:00:00"), "2024-05-02",
		"08:00:00", "19:00:01")
	alerts := v.Run([]model.Session{overThreshold})
	require.Len(t, alerts, 1)
	assert.Equal(t, "Device active unusually long without breaks", alerts[0].Reasons)
}

func TestDeviceSingleLogExemptFromDuration(t *testing.T) {
	v := newDevice(t)
	// Duration is undefined for fewer than two entries.
	sessions := []model.Session{
		deviceSession(1, "D1", wt(t, "2024-05-02 23:00:00"), "2024-05-02", "00:30:00"),
	}
	assert.Empty(t, v.Run(sessions))
}

func TestDeviceMissingFields(t *testing.T) {
	v := newDevice(t)
	sessions := []model.Session{
		deviceSession(1, "", nil, "2024-05-02", "09:00:00"),
	}
	alerts := v.Run(sessions)
	require.Len(t, alerts, 1)
	assert.Equal(t, "Missing device id;Missing received_at datetime", alerts[0].Reasons)
}

func TestDeviceReasonsUnionSorted(t *testing.T) {
	v := newDevice(t)
	sessions := []model.Session{
		deviceSession(1, "D1", wt(t, "2024-05-03 01:00:00"), "2024-05-02",
			"08:00:00", "19:30:00"),
	}
	alerts := v.Run(sessions)
	require.Len(t, alerts, 1)
	assert.Equal(t,
		"Clock reset detected;Device active unusually long without breaks",
		alerts[0].Reasons)
}

func TestDeviceNoLogsNoGroup(t *testing.T) {
	v := newDevice(t)
	// A session without logs produces no (device, session) log group, so no
	// alert even with a missing received_at.
	sessions := []model.Session{{SessionID: 1, DeviceID: "D1"}}
	assert.Empty(t, v.Run(sessions))
}

func TestDeviceAlertIDsSequentialInKeyOrder(t *testing.T) {
	v := newDevice(t)
	sessions := []model.Session{
		deviceSession(2, "D2", nil, "2024-05-02", "09:00:00"),
		deviceSession(1, "D1", nil, "2024-05-02", "09:00:00"),
	}
	alerts := v.Run(sessions)
	require.Len(t, alerts, 2)
	assert.Equal(t, 1, alerts[0].ID)
	assert.Equal(t, 1, alerts[0].SessionID)
	assert.Equal(t, 2, alerts[1].ID)
	assert.Equal(t, 2, alerts[1].SessionID)
}
