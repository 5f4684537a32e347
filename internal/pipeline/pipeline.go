// Package pipeline wires the session builder and the three validators into
// one run-to-completion batch pass: load inputs, build sessions, validate,
// save. The builder must finish before any validator starts; the validators
// themselves share nothing and run concurrently.
package pipeline

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/haldis/badgeflow/internal/calendar"
	"github.com/haldis/badgeflow/internal/model"
	"github.com/haldis/badgeflow/internal/session"
	"github.com/haldis/badgeflow/internal/storage"
	"github.com/haldis/badgeflow/internal/validate"
)

// ErrNoResults marks a Save call before a completed Run: a programmer error
// in the calling collaborator, not a recoverable condition.
var ErrNoResults = errors.New("no results to save: run the pipeline first")

// Results is everything one pipeline run produces.
type Results struct {
	Sessions        []model.Session
	DeviceAlerts    []model.DeviceAlert
	IdentityAlerts  []model.IdentityAlert
	TimestampAlerts []model.TimestampAlert
}

// Pipeline connects readers, the builder, the validators, and writers.
// Each Run fully recomputes its outputs; nothing is retained between runs.
type Pipeline struct {
	batches   storage.BatchReader
	events    storage.EventReader
	sessions  storage.SessionWriter
	alerts    storage.AlertWriter
	loc       *time.Location
	deviceCfg validate.DeviceConfig
	sched     validate.Schedule
	uid       validate.UIDPattern
	log       *zap.SugaredLogger

	results *Results
}

// New creates a Pipeline from its collaborators.
func New(
	batches storage.BatchReader,
	events storage.EventReader,
	sessions storage.SessionWriter,
	alerts storage.AlertWriter,
	loc *time.Location,
	deviceCfg validate.DeviceConfig,
	sched validate.Schedule,
	uid validate.UIDPattern,
	log *zap.SugaredLogger,
) *Pipeline {
	return &Pipeline{
		batches:   batches,
		events:    events,
		sessions:  sessions,
		alerts:    alerts,
		loc:       loc,
		deviceCfg: deviceCfg,
		sched:     sched,
		uid:       uid,
		log:       log,
	}
}

// Run executes the full pass and retains the results for Save. The session
// builder completes before any validator reads its output; the three
// validators then run in parallel over the immutable session list.
func (p *Pipeline) Run(ctx context.Context) (*Results, error) {
	rawBatches, err := p.batches.ReadBatches(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load raw batches")
	}
	events, err := p.events.ReadEvents(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "load calendar")
	}
	p.log.Infow("inputs loaded", "batches", len(rawBatches), "calendar_events", len(events))

	index := calendar.NewIndex(events)
	builder := session.NewBuilder(p.loc, index, p.log)
	sessions := builder.Build(rawBatches)

	results := &Results{Sessions: sessions}

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		results.DeviceAlerts = validate.NewDevice(p.deviceCfg, p.log).Run(sessions)
		return nil
	})
	g.Go(func() error {
		results.IdentityAlerts = validate.NewIdentity(p.uid, p.log).Run(sessions)
		return nil
	})
	g.Go(func() error {
		results.TimestampAlerts = validate.NewTimestamp(p.sched, p.log).Run(sessions)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.results = results
	return results, nil
}

// Save writes the retained results, fully overwriting all four outputs.
// Calling Save before a successful Run is ErrNoResults.
func (p *Pipeline) Save(ctx context.Context) error {
	if p.results == nil {
		return errors.WithStack(ErrNoResults)
	}

	if err := p.sessions.WriteSessions(ctx, p.results.Sessions); err != nil {
		return errors.Wrap(err, "save sessions")
	}
	if err := p.alerts.WriteDeviceAlerts(ctx, p.results.DeviceAlerts); err != nil {
		return errors.Wrap(err, "save device alerts")
	}
	if err := p.alerts.WriteIdentityAlerts(ctx, p.results.IdentityAlerts); err != nil {
		return errors.Wrap(err, "save identity alerts")
	}
	if err := p.alerts.WriteTimestampAlerts(ctx, p.results.TimestampAlerts); err != nil {
		return errors.Wrap(err, "save timestamp alerts")
	}

	p.log.Infow("outputs saved",
		"sessions", len(p.results.Sessions),
		"device_alerts", len(p.results.DeviceAlerts),
		"identity_alerts", len(p.results.IdentityAlerts),
		"timestamp_alerts", len(p.results.TimestampAlerts))
	return nil
}
