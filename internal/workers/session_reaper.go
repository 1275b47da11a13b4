package workers

import (
	"context"
	"time"

	"github.com/MKhiriev/crimewatch-access/internal/logger"
)

// SessionReaper closes sessions that stayed open longer than the
// session_timeout_minutes setting, as if the user had logged out at
// login + timeout.
type SessionReaper struct {
	sessions SessionExpirer
	settings SettingsReader
	interval time.Duration
	logger   *logger.Logger
}

func NewSessionReaper(sessions SessionExpirer, settings SettingsReader, interval time.Duration, logger *logger.Logger) *SessionReaper {
	return &SessionReaper{
		sessions: sessions,
		settings: settings,
		interval: interval,
		logger:   logger,
	}
}

func (r *SessionReaper) Run(ctx context.Context) error {
	ctx = r.logger.WithContext(ctx)
	return tick(ctx, r.interval, r.reap)
}

// reap runs one pass. Failures are logged and retried on the next tick.
func (r *SessionReaper) reap(ctx context.Context) {
	timeout := r.settings.SessionTimeout(ctx)

	n, err := r.sessions.ExpireStaleSessions(ctx, timeout)
	if err != nil {
		r.logger.Err(err).Str("func", "*SessionReaper.reap").Msg("expiring stale sessions failed")
		return
	}
	if n > 0 {
		r.logger.Info().Int("closed", n).Dur("timeout", timeout).Msg("stale sessions closed")
	}
}
