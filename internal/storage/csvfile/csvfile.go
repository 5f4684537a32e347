// Package csvfile writes the three alert tables as CSV, one file each, via
// struct tags on the alert types.
package csvfile

import (
	"context"
	"os"
	"path/filepath"

	"github.com/cockroachdb/errors"
	"github.com/gocarina/gocsv"

	"github.com/haldis/badgeflow/internal/model"
)

// Writer persists alert rows to the three configured CSV paths. Every write
// truncates and rewrites the whole file; alerts are recomputed per run and
// never merged with prior output.
type Writer struct {
	devicePath    string
	identityPath  string
	timestampPath string
}

// NewWriter creates a Writer for the given destination paths.
func NewWriter(devicePath, identityPath, timestampPath string) *Writer {
	return &Writer{
		devicePath:    devicePath,
		identityPath:  identityPath,
		timestampPath: timestampPath,
	}
}

// WriteDeviceAlerts replaces the device alert file.
func (w *Writer) WriteDeviceAlerts(_ context.Context, alerts []model.DeviceAlert) error {
	return writeCSV(w.devicePath, &alerts)
}

// WriteIdentityAlerts replaces the identity alert file.
func (w *Writer) WriteIdentityAlerts(_ context.Context, alerts []model.IdentityAlert) error {
	return writeCSV(w.identityPath, &alerts)
}

// WriteTimestampAlerts replaces the timestamp alert file.
func (w *Writer) WriteTimestampAlerts(_ context.Context, alerts []model.TimestampAlert) error {
	return writeCSV(w.timestampPath, &alerts)
}

// writeCSV truncates path and writes the header plus rows. rows is a pointer
// to a slice of csv-tagged structs; an empty slice still writes the header so
// consumers always find a well-formed file.
func writeCSV(path string, rows any) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "mkdir %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	if err := gocsv.Marshal(rows, f); err != nil {
		return errors.Wrapf(err, "write csv %s", path)
	}
	return nil
}
