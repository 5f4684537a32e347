// Package storage defines the flat-file boundary of the pipeline: readers
// for raw batches and calendar events, writers for sessions and alerts.
// Implementations live in subpackages, one per format.
package storage

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/haldis/badgeflow/internal/calendar"
	"github.com/haldis/badgeflow/internal/model"
)

// ErrMissingInput marks a required input source that is absent. Fatal for the
// stage that needed it; callers match with errors.Is.
var ErrMissingInput = errors.New("required input missing")

// BatchReader loads the ordered raw batch collection.
type BatchReader interface {
	ReadBatches(ctx context.Context) ([]model.RawBatch, error)
}

// EventReader loads the facility calendar.
type EventReader interface {
	ReadEvents(ctx context.Context) ([]calendar.Event, error)
}

// SessionWriter persists the canonical session list, replacing any previous
// contents.
type SessionWriter interface {
	WriteSessions(ctx context.Context, sessions []model.Session) error
}

// AlertWriter persists the three alert sets. Each write fully overwrites its
// destination; alert files are never merged across runs.
type AlertWriter interface {
	WriteDeviceAlerts(ctx context.Context, alerts []model.DeviceAlert) error
	WriteIdentityAlerts(ctx context.Context, alerts []model.IdentityAlert) error
	WriteTimestampAlerts(ctx context.Context, alerts []model.TimestampAlert) error
}
