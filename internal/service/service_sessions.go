package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/internal/metrics"
	"github.com/MKhiriev/crimewatch-access/internal/store"
	"github.com/MKhiriev/crimewatch-access/models"
)

// sessionService tracks login periods. A session is a value held by the
// caller; nothing here remembers a "current" session.
type sessionService struct {
	store   Store
	now     Clock
	metrics *metrics.Recorder
	logger  *logger.Logger
}

func NewSessionService(db Store, clock Clock, recorder *metrics.Recorder, logger *logger.Logger) SessionService {
	return &sessionService{
		store:   db,
		now:     clock,
		metrics: recorder,
		logger:  logger,
	}
}

// Open starts a session for principal; a guest gets a row without user id.
func (s *sessionService) Open(ctx context.Context, principal models.Principal) (models.Session, error) {
	now := s.now().UTC()

	id, err := s.store.Repositories().Sessions.OpenSession(ctx, principal.UserID, now)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sessionService.Open").Str("username", principal.Username).Msg("failed to open session")
		return models.Session{}, storageErr(err)
	}

	return models.Session{
		ID:        id,
		UserID:    principal.UserID,
		Username:  principal.Username,
		LoginTime: now,
	}, nil
}

func (s *sessionService) Get(ctx context.Context, sessionID int64) (models.Session, error) {
	sess, err := s.store.Repositories().Sessions.FindSession(ctx, sessionID)
	if errors.Is(err, store.ErrNoSessionWasFound) {
		return models.Session{}, ErrSessionNotFound
	}
	if err != nil {
		return models.Session{}, storageErr(err)
	}
	return sess, nil
}

// Close moves an open session to closed, storing the logout time and the
// duration in whole minutes, and writes a Logout entry in the same
// transaction. A closed session is never touched again.
func (s *sessionService) Close(ctx context.Context, sessionID int64) (models.Session, error) {
	var (
		closed  models.Session
		outcome error
	)

	err := s.store.InTx(ctx, func(repos store.Repositories) error {
		sess, err := repos.Sessions.FindSession(ctx, sessionID)
		if errors.Is(err, store.ErrNoSessionWasFound) {
			outcome = ErrSessionNotFound
			return nil
		}
		if err != nil {
			return err
		}
		if sess.State() == models.SessionClosed {
			outcome = ErrSessionAlreadyClosed
			return nil
		}

		now := s.now()
		minutes := models.WholeMinutes(sess.LoginTime, now)

		ok, err := repos.Sessions.CloseSession(ctx, sessionID, now, minutes)
		if err != nil {
			return err
		}
		if !ok {
			outcome = ErrSessionAlreadyClosed
			return nil
		}

		logout := now.UTC()
		sess.LogoutTime = &logout
		sess.DurationMinutes = &minutes

		entry := auditEntry(sessionPrincipal(sess), models.AuditLogout, fmt.Sprintf("session %d, %d min", sess.ID, minutes))
		if _, err := appendAudit(ctx, repos, entry, now); err != nil {
			return err
		}

		closed = sess
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sessionService.Close").Int64("session_id", sessionID).Msg("failed to close session")
		return models.Session{}, storageErr(err)
	}
	if outcome != nil {
		return models.Session{}, outcome
	}

	s.metrics.SessionsClosed(metrics.ReasonLogout, 1)
	return closed, nil
}

// ExpireStaleSessions closes sessions opened more than timeout ago. Each is
// closed at login + timeout, so its duration equals the timeout, and gets a
// SessionExpired entry.
func (s *sessionService) ExpireStaleSessions(ctx context.Context, timeout time.Duration) (int, error) {
	if timeout <= 0 {
		return 0, ErrInvalidDataProvided
	}

	expired := 0
	err := s.store.InTx(ctx, func(repos store.Repositories) error {
		expired = 0
		now := s.now()

		stale, err := repos.Sessions.ListOpenSessionsBefore(ctx, now.Add(-timeout))
		if err != nil {
			return err
		}

		for _, sess := range stale {
			logout := sess.LoginTime.Add(timeout)
			minutes := models.WholeMinutes(sess.LoginTime, logout)

			ok, err := repos.Sessions.CloseSession(ctx, sess.ID, logout, minutes)
			if err != nil {
				return err
			}
			if !ok {
				continue
			}

			entry := auditEntry(sessionPrincipal(sess), models.AuditSessionExpired, fmt.Sprintf("session %d, %d min", sess.ID, minutes))
			if _, err := appendAudit(ctx, repos, entry, now); err != nil {
				return err
			}
			expired++
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "sessionService.ExpireStaleSessions").Msg("failed to expire sessions")
		return 0, storageErr(err)
	}

	s.metrics.SessionsClosed(metrics.ReasonExpired, expired)
	return expired, nil
}

func (s *sessionService) ListOpen(ctx context.Context) ([]models.Session, error) {
	sessions, err := s.store.Repositories().Sessions.ListOpenSessions(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return sessions, nil
}

func (s *sessionService) ListRecent(ctx context.Context, limit int) ([]models.Session, error) {
	if limit <= 0 {
		return nil, ErrInvalidDataProvided
	}

	sessions, err := s.store.Repositories().Sessions.ListRecentSessions(ctx, limit)
	if err != nil {
		return nil, storageErr(err)
	}
	return sessions, nil
}

// sessionPrincipal is the identity a session row is attributed to. The role
// is not needed for audit and stays empty.
func sessionPrincipal(sess models.Session) models.Principal {
	return models.Principal{UserID: sess.UserID, Username: sess.Username}
}
