// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/crimewatch-access/internal/logger"
)

// AuditRetention deletes audit entries older than data_retention_days.
// A non-positive setting disables purging.
type AuditRetention struct {
	audit    AuditPurger
	settings SettingsReader
	now      func() time.Time
	interval time.Duration
	logger   *logger.Logger
}

func NewAuditRetention(audit AuditPurger, settings SettingsReader, now func() time.Time, interval time.Duration, logger *logger.Logger) *AuditRetention {
	return &AuditRetention{
		audit:    audit,
		settings: settings,
		now:      now,
		interval: interval,
		logger:   logger,
	}
}

func (a *AuditRetention) Run(ctx context.Context) error {
	ctx = a.logger.WithContext(ctx)
	return tick(ctx, a.interval, a.purge)
}

func (a *AuditRetention) purge(ctx context.Context) {
	days := a.settings.DataRetentionDays(ctx)
	if days <= 0 {
		return
	}

	cutoff := a.now().AddDate(0, 0, -days)
	n, err := a.audit.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		a.logger.Err(err).Str("func", "*AuditRetention.purge").Time("cutoff", cutoff).Msg("purging audit entries failed")
		return
	}
	if n > 0 {
		a.logger.Info().Int64("purged", n).Time("cutoff", cutoff).Msg("old audit entries purged")
	}
}
