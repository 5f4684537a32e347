package badgeflow

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/haldis/badgeflow/internal/config"
	"github.com/haldis/badgeflow/internal/logging"
	"github.com/haldis/badgeflow/internal/model"
	"github.com/haldis/badgeflow/internal/pipeline"
	"github.com/haldis/badgeflow/internal/storage/csvfile"
	"github.com/haldis/badgeflow/internal/storage/icsfile"
	"github.com/haldis/badgeflow/internal/storage/jsonfile"
	"github.com/haldis/badgeflow/internal/storage/jsonl"
	"github.com/haldis/badgeflow/internal/validate"
)

// Aliases for the pipeline's data types, so callers can consume results
// without reaching into internal packages.
type (
	Session        = model.Session
	LogEntry       = model.LogEntry
	MatchedEvent   = model.MatchedEvent
	DeviceAlert    = model.DeviceAlert
	IdentityAlert  = model.IdentityAlert
	TimestampAlert = model.TimestampAlert
)

// ErrNoResults is returned by Save when Run has not completed.
var ErrNoResults = pipeline.ErrNoResults

// Result is everything one pipeline run produces, as plain values.
type Result struct {
	Sessions        []Session
	DeviceAlerts    []DeviceAlert
	IdentityAlerts  []IdentityAlert
	TimestampAlerts []TimestampAlert
}

// Badgeflow is a configured pipeline instance. Create once per input set;
// each Run recomputes everything.
type Badgeflow struct {
	p *pipeline.Pipeline
}

// New assembles a pipeline from the given options, layered over the config
// file (when provided) and built-in defaults.
func New(opts ...Option) (*Badgeflow, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	cfg, err := config.Load(o.configFile)
	if err != nil {
		return nil, errors.Wrap(err, "badgeflow")
	}
	applyOverrides(&cfg, o)

	log := o.logger
	if log == nil {
		log = logging.Nop()
	}

	loc, err := cfg.Location()
	if err != nil {
		return nil, errors.Wrap(err, "badgeflow")
	}

	sched, err := validate.NewSchedule(
		cfg.Schedule.StartTime, cfg.Schedule.EndTime,
		cfg.Schedule.SemesterStart, cfg.Schedule.SemesterEnd,
		cfg.Schedule.Holidays,
	)
	if err != nil {
		return nil, errors.Wrap(err, "badgeflow")
	}

	p := pipeline.New(
		jsonl.NewReader(cfg.Paths.Batches),
		icsfile.NewReader(cfg.Paths.Calendar, loc, log),
		jsonfile.New(cfg.Paths.Sessions),
		csvfile.NewWriter(cfg.Paths.DeviceAlerts, cfg.Paths.IdentityAlerts, cfg.Paths.TimestampAlerts),
		loc,
		validate.DeviceConfig{MaxSessionHours: cfg.Validate.MaxSessionHours},
		sched,
		validate.UIDPattern{MinLen: cfg.UID.MinLen, MaxLen: cfg.UID.MaxLen},
		log,
	)
	return &Badgeflow{p: p}, nil
}

// Run executes the full pipeline and returns the results as plain values.
func (b *Badgeflow) Run(ctx context.Context) (*Result, error) {
	r, err := b.p.Run(ctx)
	if err != nil {
		return nil, err
	}
	return &Result{
		Sessions:        r.Sessions,
		DeviceAlerts:    r.DeviceAlerts,
		IdentityAlerts:  r.IdentityAlerts,
		TimestampAlerts: r.TimestampAlerts,
	}, nil
}

// Save writes the outputs of the last successful Run, overwriting the
// configured destination files.
func (b *Badgeflow) Save(ctx context.Context) error {
	return b.p.Save(ctx)
}

func applyOverrides(cfg *config.Config, o options) {
	if o.batchesPath != "" {
		cfg.Paths.Batches = o.batchesPath
	}
	if o.calendarPath != "" {
		cfg.Paths.Calendar = o.calendarPath
	}
	if o.sessionsPath != "" {
		cfg.Paths.Sessions = o.sessionsPath
	}
	if o.deviceAlertsPath != "" {
		cfg.Paths.DeviceAlerts = o.deviceAlertsPath
	}
	if o.identityAlertsPath != "" {
		cfg.Paths.IdentityAlerts = o.identityAlertsPath
	}
	if o.timestampAlertsPath != "" {
		cfg.Paths.TimestampAlerts = o.timestampAlertsPath
	}
	if o.timezone != "" {
		cfg.Timezone = o.timezone
	}
	if o.maxSessionHours != nil {
		cfg.Validate.MaxSessionHours = *o.maxSessionHours
	}
}
