package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/MKhiriev/crimewatch-access/models"
)

// Querier is satisfied by both *sql.DB and *sql.Tx, so every repository runs
// unchanged inside or outside a transaction.
type Querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// ErrorClassificator maps driver errors to retry classes and recognises
// unique-constraint violations.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
	IsUniqueViolation(err error) bool
}

// Transactor runs fn inside one transaction. fn receives repositories bound
// to that transaction; returning an error rolls everything back.
type Transactor interface {
	InTx(ctx context.Context, fn func(repos Repositories) error) error
}

type UserRepository interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByUsername(ctx context.Context, username string) (models.User, error)
	FindUserByID(ctx context.Context, userID int64) (models.User, error)
	// LockUserQuota reads the user row and, where the backend supports it,
	// holds a row lock until the surrounding transaction ends.
	LockUserQuota(ctx context.Context, userID int64) (models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateLastLogin(ctx context.Context, userID int64, at time.Time) error
	UpdatePasswordHash(ctx context.Context, userID int64, hash string) error
	UpdateRole(ctx context.Context, userID int64, role models.Role) error
	SetActive(ctx context.Context, userID int64, active bool) error
	UpdateQuotaCounter(ctx context.Context, userID int64, count int, date string) error
}

type SessionRepository interface {
	OpenSession(ctx context.Context, userID *int64, loginTime time.Time) (int64, error)
	FindSession(ctx context.Context, sessionID int64) (models.Session, error)
	// CloseSession reports false when the session was already closed.
	CloseSession(ctx context.Context, sessionID int64, logoutTime time.Time, durationMinutes int64) (bool, error)
	ListOpenSessions(ctx context.Context) ([]models.Session, error)
	ListOpenSessionsBefore(ctx context.Context, cutoff time.Time) ([]models.Session, error)
	ListRecentSessions(ctx context.Context, limit int) ([]models.Session, error)
}

type AuditRepository interface {
	Append(ctx context.Context, entry models.AuditEntry) (int64, error)
	// LastTimestamp returns the newest timestamp recorded for username;
	// ok is false when there is none.
	LastTimestamp(ctx context.Context, username string) (ts time.Time, ok bool, err error)
	List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type SettingRepository interface {
	ListSettings(ctx context.Context) ([]models.SystemSetting, error)
	GetSetting(ctx context.Context, key string) (models.SystemSetting, error)
	UpdateSetting(ctx context.Context, key, value, updatedBy string, at time.Time) error
}

type AttributionRepository interface {
	SavePrediction(ctx context.Context, record models.PredictionRecord) (int64, error)
	SaveReport(ctx context.Context, record models.ReportRecord) (int64, error)
	ListPredictions(ctx context.Context, limit int) ([]models.PredictionRecord, error)
	ListReports(ctx context.Context, limit int) ([]models.ReportRecord, error)
}
