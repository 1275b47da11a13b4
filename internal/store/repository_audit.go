package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/models"
)

// auditRepository implements [AuditRepository] on audit_logs. It never
// updates a row; the only delete is the retention purge.
type auditRepository struct {
	repo
}

func (r *auditRepository) Append(ctx context.Context, entry models.AuditEntry) (int64, error) {
	log := logger.FromContext(ctx)

	var id int64
	err := r.q.QueryRowContext(ctx, appendAudit,
		nullableID(entry.UserID),
		entry.Username,
		entry.Action,
		entry.Details,
		entry.Timestamp.UTC(),
	).Scan(&id)
	if err != nil {
		log.Err(err).
			Str("func", "auditRepository.Append").
			Str("username", entry.Username).
			Str("action", entry.Action).
			Msg("failed to append audit entry")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return id, nil
}

func (r *auditRepository) LastTimestamp(ctx context.Context, username string) (time.Time, bool, error) {
	var ts time.Time
	err := r.q.QueryRowContext(ctx, lastAuditTimestamp, username).Scan(&ts)
	if errors.Is(err, sql.ErrNoRows) {
		return time.Time{}, false, nil
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "auditRepository.LastTimestamp").Msg("failed to read last timestamp")
		return time.Time{}, false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return ts, true, nil
}

// List returns entries matching filter ordered by timestamp, then id
// (reversed when filter.Newest is set).
func (r *auditRepository) List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListAuditQuery(filter)
	if err != nil {
		log.Err(err).Str("func", "auditRepository.List").Msg("failed to create query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "auditRepository.List").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.AuditEntry, 0, 16)
	for rows.Next() {
		var (
			e      models.AuditEntry
			userID sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &userID, &e.Username, &e.Action, &e.Details, &e.Timestamp); err != nil {
			log.Err(err).Str("func", "auditRepository.List").Msg("failed to scan row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		if userID.Valid {
			id := userID.Int64
			e.UserID = &id
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

func (r *auditRepository) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	res, err := r.q.ExecContext(ctx, purgeAudit, cutoff.UTC())
	if err != nil {
		log.Err(err).Str("func", "auditRepository.PurgeOlderThan").Time("cutoff", cutoff).Msg("failed to purge audit")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "auditRepository.PurgeOlderThan").Msg("failed to count purged rows")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return n, nil
}

// buildListAuditQuery uses $N placeholders, which both drivers accept.
func buildListAuditQuery(filter models.AuditFilter) (string, []any, error) {
	b := sq.Select("id", "user_id", "username", "action", "details", "timestamp").
		From("audit_logs").
		PlaceholderFormat(sq.Dollar)

	if filter.Newest {
		b = b.OrderBy("timestamp DESC", "id DESC")
	} else {
		b = b.OrderBy("timestamp", "id")
	}

	if filter.UserID != nil {
		b = b.Where(sq.Eq{"user_id": *filter.UserID})
	}
	if filter.Username != "" {
		b = b.Where(sq.Eq{"username": filter.Username})
	}
	if filter.Action != "" {
		b = b.Where(sq.Eq{"action": filter.Action})
	}
	if !filter.From.IsZero() {
		b = b.Where(sq.GtOrEq{"timestamp": filter.From.UTC()})
	}
	if !filter.To.IsZero() {
		b = b.Where(sq.Lt{"timestamp": filter.To.UTC()})
	}
	if filter.Limit > 0 {
		b = b.Limit(filter.Limit)
	}

	return b.ToSql()
}
