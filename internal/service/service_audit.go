package service

import (
	"context"
	"time"

	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/internal/store"
	"github.com/MKhiriev/crimewatch-access/models"
)

// auditService is the standalone entry point to the audit trail. Services
// that audit their own effects write through appendAudit inside their
// transaction instead.
type auditService struct {
	store  Store
	now    Clock
	logger *logger.Logger
}

func NewAuditService(db Store, clock Clock, logger *logger.Logger) AuditService {
	return &auditService{
		store:  db,
		now:    clock,
		logger: logger,
	}
}

// Record appends one entry. userID is nil for guest or anonymous events.
func (s *auditService) Record(ctx context.Context, userID *int64, username, action, details string) (int64, error) {
	if username == "" || action == "" {
		return 0, ErrInvalidDataProvided
	}

	var id int64
	err := s.store.InTx(ctx, func(repos store.Repositories) (err error) {
		entry := models.AuditEntry{UserID: userID, Username: username, Action: action, Details: details}
		id, err = appendAudit(ctx, repos, entry, s.now())
		return err
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "auditService.Record").Str("username", username).Str("action", action).Msg("failed to record audit entry")
		return 0, storageErr(err)
	}

	return id, nil
}

// List returns matching entries ordered by timestamp, then id.
func (s *auditService) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error) {
	entries, err := s.store.Repositories().Audit.List(ctx, filter)
	if err != nil {
		return nil, storageErr(err)
	}
	return entries, nil
}

// PurgeOlderThan deletes entries older than cutoff. Only the retention
// worker calls it.
func (s *auditService) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	n, err := s.store.Repositories().Audit.PurgeOlderThan(ctx, cutoff)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "auditService.PurgeOlderThan").Time("cutoff", cutoff).Msg("failed to purge audit entries")
		return 0, storageErr(err)
	}
	return n, nil
}
