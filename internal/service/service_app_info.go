package service

import (
	"context"
	"time"

	"github.com/MKhiriev/crimewatch-access/internal/config"
	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/models"
)

// appInfoService describes the running instance. Everything but the quota
// date is fixed at start-up.
type appInfoService struct {
	info models.AppInfo
	loc  *time.Location
	now  Clock

	logger *logger.Logger
}

// NewAppInfoService needs a version; scheme is the scheme new password hashes
// are produced with and loc the quota zone.
func NewAppInfoService(cfg config.StructuredConfig, scheme string, loc *time.Location, clock Clock, logger *logger.Logger) (AppInfoService, error) {
	if cfg.App.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}
	if loc == nil {
		loc = time.UTC
	}

	driver := cfg.Storage.DB.Driver
	if driver == "" {
		driver = config.DefaultDriver
	}

	return &appInfoService{
		info: models.AppInfo{
			Version:        cfg.App.Version,
			QuotaTimeZone:  loc.String(),
			PasswordScheme: scheme,
			StorageDriver:  driver,
		},
		loc:    loc,
		now:    clock,
		logger: logger,
	}, nil
}

func (s *appInfoService) Info(ctx context.Context) models.AppInfo {
	info := s.info
	info.QuotaDate = s.now().In(s.loc).Format(dateLayout)
	return info
}
