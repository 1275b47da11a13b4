package service

import (
	"fmt"
	"time"

	"github.com/MKhiriev/crimewatch-access/internal/config"
	"github.com/MKhiriev/crimewatch-access/internal/crypto"
	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/internal/metrics"
)

// Services is the in-process API of the access-control core. A UI linked
// into the same binary calls it directly; the HTTP adapter wraps it for one
// that is not.
type Services struct {
	Credentials CredentialService
	Sessions    SessionService
	Quota       QuotaService
	Audit       AuditService
	Attribution AttributionService
	Settings    SettingsService
	Tokens      TokenService
	AppInfo     AppInfoService
}

// NewServices wires every service to db. The quota epoch follows
// cfg.App.Timezone; new password hashes use cfg.App.PasswordScheme.
func NewServices(db Store, cfg config.StructuredConfig, recorder *metrics.Recorder, logger *logger.Logger) (*Services, error) {
	loc, err := cfg.App.Location()
	if err != nil {
		return nil, fmt.Errorf("resolving time zone: %w", err)
	}

	hasher, err := crypto.NewPasswordHasher(cfg.App.PasswordScheme)
	if err != nil {
		return nil, fmt.Errorf("building password hasher: %w", err)
	}

	clock := Clock(time.Now)

	appInfo, err := NewAppInfoService(cfg, hasher.Scheme(), loc, clock, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		Credentials: NewCredentialService(db, hasher, clock, recorder, logger),
		Sessions:    NewSessionService(db, clock, recorder, logger),
		Quota:       NewQuotaService(db, loc, clock, recorder, logger),
		Audit:       NewAuditService(db, clock, logger),
		Attribution: NewAttributionService(db, cfg.App.VerifyReportArtifacts, clock, recorder, logger),
		Settings:    NewSettingsService(db, clock, logger),
		Tokens:      NewTokenService(cfg.App, logger),
		AppInfo:     appInfo,
	}, nil
}
