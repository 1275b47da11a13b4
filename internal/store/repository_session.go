package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/models"
)

// sessionRepository implements [SessionRepository] on user_sessions.
type sessionRepository struct {
	repo
}

func scanSession(s rowScanner) (models.Session, error) {
	var (
		sess     models.Session
		userID   sql.NullInt64
		logout   sql.NullTime
		duration sql.NullInt64
	)

	if err := s.Scan(&sess.ID, &userID, &sess.Username, &sess.LoginTime, &logout, &duration); err != nil {
		return models.Session{}, err
	}

	if userID.Valid {
		id := userID.Int64
		sess.UserID = &id
	}
	if logout.Valid {
		t := logout.Time
		sess.LogoutTime = &t
	}
	if duration.Valid {
		d := duration.Int64
		sess.DurationMinutes = &d
	}

	return sess, nil
}

func (r *sessionRepository) OpenSession(ctx context.Context, userID *int64, loginTime time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	var id int64
	if err := r.q.QueryRowContext(ctx, openSession, nullableID(userID), loginTime.UTC()).Scan(&id); err != nil {
		log.Err(err).Str("func", "sessionRepository.OpenSession").Msg("failed to insert session")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return id, nil
}

func (r *sessionRepository) FindSession(ctx context.Context, sessionID int64) (models.Session, error) {
	log := logger.FromContext(ctx)

	sess, err := scanSession(r.q.QueryRowContext(ctx, findSession, sessionID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Session{}, ErrNoSessionWasFound
	}
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.FindSession").Int64("session_id", sessionID).Msg("failed to find session")
		return models.Session{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return sess, nil
}

// CloseSession only touches a row whose logout_time is still NULL, so a
// closed session keeps its original duration.
func (r *sessionRepository) CloseSession(ctx context.Context, sessionID int64, logoutTime time.Time, durationMinutes int64) (bool, error) {
	log := logger.FromContext(ctx)

	res, err := r.q.ExecContext(ctx, closeSession, logoutTime.UTC(), durationMinutes, sessionID)
	if err != nil {
		log.Err(err).Str("func", "sessionRepository.CloseSession").Int64("session_id", sessionID).Msg("failed to close session")
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}

	return affected == 1, nil
}

func (r *sessionRepository) ListOpenSessions(ctx context.Context) ([]models.Session, error) {
	return r.list(ctx, "sessionRepository.ListOpenSessions", listOpenSessions)
}

func (r *sessionRepository) ListOpenSessionsBefore(ctx context.Context, cutoff time.Time) ([]models.Session, error) {
	return r.list(ctx, "sessionRepository.ListOpenSessionsBefore", listOpenSessionsBefore, cutoff.UTC())
}

func (r *sessionRepository) ListRecentSessions(ctx context.Context, limit int) ([]models.Session, error) {
	return r.list(ctx, "sessionRepository.ListRecentSessions", listRecentSessions, limit)
}

func (r *sessionRepository) list(ctx context.Context, funcName, query string, args ...any) ([]models.Session, error) {
	log := logger.FromContext(ctx)

	rows, err := r.q.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	sessions := make([]models.Session, 0, 8)
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			log.Err(err).Str("func", funcName).Msg("failed to scan row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return sessions, nil
}

// nullableID maps a nil id to SQL NULL.
func nullableID(id *int64) sql.NullInt64 {
	if id == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *id, Valid: true}
}
