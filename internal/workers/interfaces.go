// Package workers runs the periodic maintenance jobs of the access-control
// daemon: closing sessions left open past the configured timeout and
// purging audit entries older than the retention window.
package workers

import (
	"context"
	"time"
)

// Worker is a background job. Run blocks until ctx is cancelled or the job
// fails.
type Worker interface {
	Run(ctx context.Context) error
}

// SessionExpirer closes sessions open for longer than timeout.
type SessionExpirer interface {
	ExpireStaleSessions(ctx context.Context, timeout time.Duration) (int, error)
}

// AuditPurger deletes audit entries older than cutoff.
type AuditPurger interface {
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

// SettingsReader yields the current maintenance settings. Values are read
// on every tick so that an administrative change applies without restart.
type SettingsReader interface {
	SessionTimeout(ctx context.Context) time.Duration
	DataRetentionDays(ctx context.Context) int
}
