package status

import (
	"context"

	"github.com/MKhiriev/crimewatch-access/internal/adapter"
	"github.com/MKhiriev/crimewatch-access/internal/store"
	"github.com/MKhiriev/crimewatch-access/models"
)

// storeSource reads the database directly. It is meant for the operator of
// the machine that owns the database file and bypasses role checks.
type storeSource struct {
	repos store.Repositories
}

func NewStoreSource(repos store.Repositories) Source {
	return &storeSource{repos: repos}
}

func (s *storeSource) Users(ctx context.Context) ([]models.User, error) {
	return s.repos.Users.ListUsers(ctx)
}

func (s *storeSource) RecentAudit(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	return s.repos.Audit.List(ctx, models.AuditFilter{Limit: uint64(limit), Newest: true})
}

func (s *storeSource) OpenSessions(ctx context.Context) ([]models.Session, error) {
	return s.repos.Sessions.ListOpenSessions(ctx)
}

func (s *storeSource) RecentSessions(ctx context.Context, limit int) ([]models.Session, error) {
	return s.repos.Sessions.ListRecentSessions(ctx, limit)
}

func (s *storeSource) RecentPredictions(ctx context.Context, limit int) ([]models.PredictionRecord, error) {
	return s.repos.Attribution.ListPredictions(ctx, limit)
}

func (s *storeSource) RecentReports(ctx context.Context, limit int) ([]models.ReportRecord, error) {
	return s.repos.Attribution.ListReports(ctx, limit)
}

// remoteSource asks a running daemon. The client must be logged in as an
// account that may manage users and view the audit trail.
type remoteSource struct {
	client adapter.AccessClient
}

func NewRemoteSource(client adapter.AccessClient) Source {
	return &remoteSource{client: client}
}

func (s *remoteSource) Users(ctx context.Context) ([]models.User, error) {
	return s.client.ListUsers(ctx)
}

func (s *remoteSource) RecentAudit(ctx context.Context, limit int) ([]models.AuditEntry, error) {
	return s.client.ListAudit(ctx, models.AuditFilter{Limit: uint64(limit), Newest: true})
}

func (s *remoteSource) OpenSessions(ctx context.Context) ([]models.Session, error) {
	return s.client.ListOpenSessions(ctx)
}

func (s *remoteSource) RecentSessions(ctx context.Context, limit int) ([]models.Session, error) {
	return s.client.ListRecentSessions(ctx, limit)
}

func (s *remoteSource) RecentPredictions(ctx context.Context, limit int) ([]models.PredictionRecord, error) {
	return s.client.ListPredictions(ctx, limit)
}

func (s *remoteSource) RecentReports(ctx context.Context, limit int) ([]models.ReportRecord, error) {
	return s.client.ListReports(ctx, limit)
}
