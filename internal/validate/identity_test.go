package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haldis/badgeflow/internal/logging"
	"github.com/haldis/badgeflow/internal/model"
)

func identitySession(id int, deviceID string, redundant map[string]int, uids ...string) model.Session {
	logs := make([]model.LogEntry, len(uids))
	for i, uid := range uids {
		logs[i] = model.LogEntry{UID: uid, TS: "09:00:00"}
	}
	if redundant == nil {
		redundant = map[string]int{}
	}
	return model.Session{
		SessionID:     id,
		DeviceID:      deviceID,
		RedundantUIDs: redundant,
		Logs:          logs,
		UniqueCount:   len(logs),
	}
}

func newIdentity(t *testing.T) *IdentityValidator {
	t.Helper()
	return NewIdentity(DefaultUIDPattern(), logging.Nop())
}

func TestIdentityRareUIDBlocksClustering(t *testing.T) {
	v := newIdentity(t)
	// One isolated sighting across the whole dataset.
	sessions := []model.Session{
		identitySession(1, "D1", nil, "a1b2c3d4"),
	}
	alerts := v.Run(sessions)
	require.Len(t, alerts, 1)

	a := alerts[0]
	assert.Equal(t, "a1b2c3d4", a.UID)
	assert.False(t, a.AllowClustering)
	assert.Equal(t, "Globally rare UID", a.Reasons)
	assert.Equal(t, 0, a.NormalSessionsCount)
	assert.Equal(t, 1, a.RepeatedAnomalyCount)
	assert.Equal(t, "1", a.AnomalySessions)
}

func TestIdentityRecurringCleanUIDNoAlert(t *testing.T) {
	v := newIdentity(t)
	// Same UID across two sessions with no anomalies: no alert row at all.
	sessions := []model.Session{
		identitySession(1, "D1", nil, "a1b2c3d4"),
		identitySession(2, "D1", nil, "a1b2c3d4"),
	}
	assert.Empty(t, v.Run(sessions))

	decisions := v.AllowClustering(sessions)
	assert.True(t, decisions["a1b2c3d4"])
}

func TestIdentitySuspiciousPattern(t *testing.T) {
	v := newIdentity(t)
	sessions := []model.Session{
		identitySession(1, "D1", nil, "BADUID!!"),
		identitySession(2, "D1", nil, "BADUID!!"),
	}
	alerts := v.Run(sessions)
	require.Len(t, alerts, 1)

	a := alerts[0]
	assert.False(t, a.AllowClustering)
	assert.Equal(t, "Repeated anomaly across sessions;Suspicious UID pattern", a.Reasons)
	assert.Equal(t, 2, a.RepeatedAnomalyCount)
	assert.Equal(t, "1;2", a.AnomalySessions)
	assert.Equal(t, 0, a.NormalSessionsCount)
}

func TestIdentityRedundancyKeepsClustering(t *testing.T) {
	v := newIdentity(t)
	// Redundancy is a session-level anomaly: it flags, but the identity
	// itself stays eligible for clustering.
	sessions := []model.Session{
		identitySession(1, "D1", map[string]int{"a1b2c3d4": 2}, "a1b2c3d4"),
		identitySession(2, "D1", nil, "a1b2c3d4"),
	}
	alerts := v.Run(sessions)
	require.Len(t, alerts, 1)

	a := alerts[0]
	assert.True(t, a.AllowClustering)
	assert.Equal(t, "Redundant UID in sessions", a.Reasons)
	assert.Equal(t, 1, a.RepeatedAnomalyCount)
	assert.Equal(t, 1, a.NormalSessionsCount)
}

func TestIdentitySingleRedundancyNotFlagged(t *testing.T) {
	v := newIdentity(t)
	// Redundancy count of exactly 1 is below the session-local threshold.
	sessions := []model.Session{
		identitySession(1, "D1", map[string]int{"a1b2c3d4": 1}, "a1b2c3d4"),
		identitySession(2, "D1", nil, "a1b2c3d4"),
	}
	assert.Empty(t, v.Run(sessions))
}

func TestIdentityRepeatedAnomalyAcrossSessions(t *testing.T) {
	v := newIdentity(t)
	sessions := []model.Session{
		identitySession(1, "D1", map[string]int{"a1b2c3d4": 2}, "a1b2c3d4"),
		identitySession(2, "D1", map[string]int{"a1b2c3d4": 3}, "a1b2c3d4"),
		identitySession(3, "D1", nil, "a1b2c3d4"),
	}
	alerts := v.Run(sessions)
	require.Len(t, alerts, 1)

	a := alerts[0]
	assert.True(t, a.AllowClustering)
	assert.Equal(t, "Redundant UID in sessions;Repeated anomaly across sessions", a.Reasons)
	assert.Equal(t, 2, a.RepeatedAnomalyCount)
	assert.Equal(t, "1;2", a.AnomalySessions)
	assert.Equal(t, 1, a.NormalSessionsCount)
}

func TestIdentityGroupsPerDevice(t *testing.T) {
	v := newIdentity(t)
	// The same suspicious UID on two devices yields one row per
	// (uid, device), sorted, with sequential IDs.
	sessions := []model.Session{
		identitySession(1, "D2", nil, "BADUID!!"),
		identitySession(2, "D1", nil, "BADUID!!"),
	}
	alerts := v.Run(sessions)
	require.Len(t, alerts, 2)
	assert.Equal(t, 1, alerts[0].ID)
	assert.Equal(t, "D1", alerts[0].DeviceID)
	assert.Equal(t, 2, alerts[1].ID)
	assert.Equal(t, "D2", alerts[1].DeviceID)
}

func TestIdentityAllowClusteringDecisions(t *testing.T) {
	v := newIdentity(t)
	sessions := []model.Session{
		identitySession(1, "D1", nil, "a1b2c3d4", "deadbee1"),
		identitySession(2, "D1", nil, "a1b2c3d4", "deadbee1"),
		identitySession(3, "D1", nil, "0fe1a2b3"),
	}
	decisions := v.AllowClustering(sessions)
	assert.True(t, decisions["a1b2c3d4"])
	assert.True(t, decisions["deadbee1"])
	assert.False(t, decisions["0fe1a2b3"])
}
