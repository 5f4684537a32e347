package badgeflow

import (
	"go.uber.org/zap"
)

type options struct {
	configFile string
	logger     *zap.SugaredLogger

	batchesPath  string
	calendarPath string

	sessionsPath        string
	deviceAlertsPath    string
	identityAlertsPath  string
	timestampAlertsPath string

	timezone        string
	maxSessionHours *float64
}

// Option configures a Badgeflow instance.
type Option func(*options)

// WithConfigFile loads settings from a JSON config file before applying the
// other options. Options passed to New take precedence over the file.
func WithConfigFile(path string) Option {
	return func(o *options) { o.configFile = path }
}

// WithLogger sets the logger. Default: a no-op logger, since library callers
// usually own their logging setup.
func WithLogger(log *zap.SugaredLogger) Option {
	return func(o *options) { o.logger = log }
}

// WithInputs sets the raw batches (JSONL) and calendar (ICS) source paths.
func WithInputs(batches, calendar string) Option {
	return func(o *options) {
		o.batchesPath = batches
		o.calendarPath = calendar
	}
}

// WithOutputs sets the four output destinations: the session JSON file and
// the three alert CSV files.
func WithOutputs(sessions, deviceAlerts, identityAlerts, timestampAlerts string) Option {
	return func(o *options) {
		o.sessionsPath = sessions
		o.deviceAlertsPath = deviceAlerts
		o.identityAlertsPath = identityAlerts
		o.timestampAlertsPath = timestampAlerts
	}
}

// WithTimezone sets the facility zone used for DST correction and local
// normalization. Default: Europe/Paris.
func WithTimezone(zone string) Option {
	return func(o *options) { o.timezone = zone }
}

// WithMaxSessionHours overrides the continuous-activity threshold for the
// device validator. Default: 11.
func WithMaxSessionHours(hours float64) Option {
	return func(o *options) { o.maxSessionHours = &hours }
}
