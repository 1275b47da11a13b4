package service

import (
	"context"
	"time"

	"github.com/MKhiriev/crimewatch-access/internal/store"
	"github.com/MKhiriev/crimewatch-access/models"
)

// Store is the persistence handle the services run on. *store.DB satisfies it.
type Store interface {
	store.Transactor
	Repositories() store.Repositories
}

// Clock returns the current time. Tests replace it to drive day rollover.
type Clock func() time.Time

type CredentialService interface {
	// Authenticate checks username and password. It returns ErrUserNotFound,
	// ErrUserInactive or ErrBadCredential for the expected failures; the
	// inactive check happens before the password is looked at.
	Authenticate(ctx context.Context, username, password string) (models.User, error)
	Guest() models.Principal
	VerifyPassword(plaintext, storedHash string) bool
	HashPassword(plaintext string) (string, error)

	CreateUser(ctx context.Context, actor models.Principal, newUser models.NewUser) (models.User, error)
	ChangePassword(ctx context.Context, actor models.Principal, userID int64, password string) error
	ChangeRole(ctx context.Context, actor models.Principal, userID int64, role models.Role) error
	SetActive(ctx context.Context, actor models.Principal, userID int64, active bool) error
	ListUsers(ctx context.Context, actor models.Principal) ([]models.User, error)

	// EnsureDefaultUsers seeds admin, analyst and user when no admin exists.
	EnsureDefaultUsers(ctx context.Context) (int, error)
}

type SessionService interface {
	Open(ctx context.Context, principal models.Principal) (models.Session, error)
	Close(ctx context.Context, sessionID int64) (models.Session, error)
	// Get returns ErrSessionNotFound for an unknown id.
	Get(ctx context.Context, sessionID int64) (models.Session, error)
	// ExpireStaleSessions closes every session open for longer than timeout.
	ExpireStaleSessions(ctx context.Context, timeout time.Duration) (int, error)
	ListOpen(ctx context.Context) ([]models.Session, error)
	ListRecent(ctx context.Context, limit int) ([]models.Session, error)
}

type QuotaService interface {
	// CheckAndConsume returns a decision for every expected outcome; the
	// error is non-nil only for storage failures.
	CheckAndConsume(ctx context.Context, principal models.Principal, action models.Action) (models.QuotaDecision, error)
}

type AuditService interface {
	Record(ctx context.Context, userID *int64, username, action, details string) (int64, error)
	List(ctx context.Context, filter models.AuditFilter) ([]models.AuditEntry, error)
	PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error)
}

type AttributionService interface {
	RecordPrediction(ctx context.Context, principal models.Principal, sessionID *int64, forecast models.Forecast) (int64, error)
	RecordReport(ctx context.Context, principal models.Principal, sessionID *int64, artifact models.ReportArtifact) (int64, error)
	ListPredictions(ctx context.Context, limit int) ([]models.PredictionRecord, error)
	ListReports(ctx context.Context, limit int) ([]models.ReportRecord, error)
}

type SettingsService interface {
	All(ctx context.Context) ([]models.SystemSetting, error)
	Get(ctx context.Context, key string) (models.SystemSetting, error)
	StandardUserDailyQuota(ctx context.Context) int
	SessionTimeout(ctx context.Context) time.Duration
	DataRetentionDays(ctx context.Context) int
	EmailNotificationsEnabled(ctx context.Context) bool
	Update(ctx context.Context, actor models.Principal, key, value string) (models.SystemSetting, error)
}

type TokenService interface {
	CreateToken(ctx context.Context, principal models.Principal, sessionID int64) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type AppInfoService interface {
	// Info reports the version and the accounting settings in force.
	Info(ctx context.Context) models.AppInfo
}
