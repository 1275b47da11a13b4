// Package status builds the access-control status report: accounts with
// their quota counters, the latest audit entries, open and recent sessions
// and the latest attribution records.
//
// A report is collected from a [Source] (the local database or a running
// daemon) and rendered for a terminal with lipgloss.
package status

import (
	"context"
	"fmt"
	"time"

	"github.com/MKhiriev/crimewatch-access/models"
)

// Section sizes of the report.
const (
	AuditLimit      = 10
	SessionLimit    = 5
	AttributionSize = 5
)

type Source interface {
	Users(ctx context.Context) ([]models.User, error)
	RecentAudit(ctx context.Context, limit int) ([]models.AuditEntry, error)
	OpenSessions(ctx context.Context) ([]models.Session, error)
	RecentSessions(ctx context.Context, limit int) ([]models.Session, error)
	RecentPredictions(ctx context.Context, limit int) ([]models.PredictionRecord, error)
	RecentReports(ctx context.Context, limit int) ([]models.ReportRecord, error)
}

type Report struct {
	GeneratedAt    time.Time
	Users          []models.User
	RecentAudit    []models.AuditEntry
	OpenSessions   []models.Session
	RecentSessions []models.Session
	Predictions    []models.PredictionRecord
	Reports        []models.ReportRecord
}

// Collect reads every section from src. The first failing section aborts
// the report.
func Collect(ctx context.Context, src Source, now time.Time) (Report, error) {
	var (
		r   = Report{GeneratedAt: now}
		err error
	)

	if r.Users, err = src.Users(ctx); err != nil {
		return Report{}, fmt.Errorf("reading users: %w", err)
	}
	if r.RecentAudit, err = src.RecentAudit(ctx, AuditLimit); err != nil {
		return Report{}, fmt.Errorf("reading audit log: %w", err)
	}
	if r.OpenSessions, err = src.OpenSessions(ctx); err != nil {
		return Report{}, fmt.Errorf("reading open sessions: %w", err)
	}
	if r.RecentSessions, err = src.RecentSessions(ctx, SessionLimit); err != nil {
		return Report{}, fmt.Errorf("reading recent sessions: %w", err)
	}
	if r.Predictions, err = src.RecentPredictions(ctx, AttributionSize); err != nil {
		return Report{}, fmt.Errorf("reading predictions: %w", err)
	}
	if r.Reports, err = src.RecentReports(ctx, AttributionSize); err != nil {
		return Report{}, fmt.Errorf("reading reports: %w", err)
	}

	return r, nil
}
