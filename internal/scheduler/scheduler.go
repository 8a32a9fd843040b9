// Copyright (c) 2025-2026 HopeWorks Foundation
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs periodic maintenance jobs: audit log retention,
// appointment retention, and GeoIP database reloads.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/hopeworks/hopeworks-go/internal/geoip"
	"github.com/hopeworks/hopeworks-go/internal/store"
)

// Scheduler handles scheduled maintenance tasks.
type Scheduler struct {
	db     *sql.DB
	geo    *geoip.Lookup
	cron   *cron.Cron
	logger *slog.Logger

	eventRetention       time.Duration
	appointmentRetention time.Duration
}

// New creates a new scheduler instance. Retention durations of zero disable
// the corresponding purge job.
func New(db *sql.DB, geo *geoip.Lookup, logger *slog.Logger, eventRetention, appointmentRetention time.Duration) *Scheduler {
	return &Scheduler{
		db:                   db,
		geo:                  geo,
		cron:                 cron.New(),
		logger:               logger,
		eventRetention:       eventRetention,
		appointmentRetention: appointmentRetention,
	}
}

// Start registers the maintenance jobs and begins the cron loop.
func (s *Scheduler) Start() error {
	// Retention purges run nightly.
	if _, err := s.cron.AddFunc("30 3 * * *", s.purgeOldRecords); err != nil {
		return err
	}

	// The GeoIP database is replaced on disk by an external updater.
	if _, err := s.cron.AddFunc("0 * * * *", s.reloadGeoIP); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// purgeOldRecords removes audit events and appointments past retention.
func (s *Scheduler) purgeOldRecords() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	queries := store.New(s.db)
	now := time.Now()

	if s.eventRetention > 0 {
		removed, err := queries.DeleteEventsBefore(ctx, now.Add(-s.eventRetention))
		if err != nil {
			s.logger.Error("failed to purge old events", "error", err)
		} else if removed > 0 {
			s.logger.Info("purged old events", "removed", removed)
		}
	}

	if s.appointmentRetention > 0 {
		removed, err := queries.DeleteAppointmentsBefore(ctx, now.Add(-s.appointmentRetention))
		if err != nil {
			s.logger.Error("failed to purge old appointments", "error", err)
		} else if removed > 0 {
			s.logger.Info("purged old appointments", "removed", removed)
		}
	}
}

// reloadGeoIP picks up an updated GeoIP database file.
func (s *Scheduler) reloadGeoIP() {
	if s.geo == nil {
		return
	}
	if err := s.geo.Reload(); err != nil {
		s.logger.Warn("geoip reload failed", "error", err)
	}
}
