package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haldis/badgeflow/internal/model"
	"github.com/haldis/badgeflow/internal/storage"
)

func TestWriteAndReadSessions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "sessions.json")
	store := New(path)
	ctx := context.Background()

	received := model.NewWallTime(time.Date(2024, 3, 10, 23, 5, 0, 0, time.UTC))
	sessions := []model.Session{
		{
			SessionID:     1,
			DeviceID:      "D1",
			EventContext:  "Algorithms",
			ReceivedAt:    &received,
			LogsDate:      "2024-03-10",
			RecordedCount: 2,
			UniqueCount:   1,
			RedundantUIDs: map[string]int{"a1b2c3d4": 1},
			Logs: []model.LogEntry{
				{UID: "a1b2c3d4", TS: "00:30:00"},
			},
		},
	}
	require.NoError(t, store.WriteSessions(ctx, sessions))

	got, err := store.ReadSessions(ctx)
	require.NoError(t, err)
	assert.Equal(t, sessions, got)
}

func TestWriteSessionsFieldNames(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	store := New(path)

	require.NoError(t, store.WriteSessions(context.Background(), []model.Session{
		{SessionID: 1, DeviceID: "D1", RedundantUIDs: map[string]int{}},
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	body := string(data)
	assert.Contains(t, body, `"session_id"`)
	assert.Contains(t, body, `"device_id"`)
	assert.Contains(t, body, `"redundant_uids"`)
	// Absent received_at serializes as null, never as a zero time.
	assert.Contains(t, body, `"received_at": null`)
}

func TestReadSessionsMissingFile(t *testing.T) {
	store := New(filepath.Join(t.TempDir(), "nope.json"))
	_, err := store.ReadSessions(context.Background())
	require.Error(t, err)
	assert.True(t, errors.Is(err, storage.ErrMissingInput))
}

func TestReadSessionsMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	require.NoError(t, os.WriteFile(path, []byte("[{broken"), 0o644))
	_, err := New(path).ReadSessions(context.Background())
	assert.Error(t, err)
}
