package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/haldis/badgeflow/internal/config"
	"github.com/haldis/badgeflow/internal/logging"
	"github.com/haldis/badgeflow/internal/pipeline"
	"github.com/haldis/badgeflow/internal/storage/csvfile"
	"github.com/haldis/badgeflow/internal/storage/icsfile"
	"github.com/haldis/badgeflow/internal/storage/jsonfile"
	"github.com/haldis/badgeflow/internal/storage/jsonl"
	"github.com/haldis/badgeflow/internal/validate"
)

func main() {
	configPath := flag.String("config", "", "path to badgeflow.json (defaults + BADGEFLOW_* env when empty)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "badgeflow: %v\n", err)
		os.Exit(1)
	}

	log := logging.New(cfg.Log.Format, cfg.Log.Level)
	defer log.Sync() //nolint:errcheck // stderr sync failure is uninteresting

	loc, err := cfg.Location()
	if err != nil {
		log.Fatalw("bad timezone", "error", err)
	}

	sched, err := validate.NewSchedule(
		cfg.Schedule.StartTime, cfg.Schedule.EndTime,
		cfg.Schedule.SemesterStart, cfg.Schedule.SemesterEnd,
		cfg.Schedule.Holidays,
	)
	if err != nil {
		log.Fatalw("bad schedule", "error", err)
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Warnw("shutting down", "signal", sig)
		cancel()
	}()

	if _, err := p.Run(ctx); err != nil {
		log.Fatalw("pipeline run failed", "error", err)
	}
	if err := p.Save(ctx); err != nil {
		log.Fatalw("pipeline save failed", "error", err)
	}
}
