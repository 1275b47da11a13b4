package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/crimewatch-access/internal/config"
	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/models"
)

func TestNewAppInfoService(t *testing.T) {
	tests := []struct {
		name    string
		version string
		wantErr error
	}{
		{name: "release", version: "1.4.0"},
		{name: "pre-release with build metadata", version: "v1.5.0-rc.1+zrp"},
		{name: "linker default", version: "N/A"},
		{name: "empty", version: "", wantErr: ErrVersionIsNotSpecified},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.StructuredConfig{App: config.App{Version: tt.version}}
			svc, err := NewAppInfoService(cfg, "argon2id", time.UTC, fixedClock, logger.Nop())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, svc)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.version, svc.Info(context.Background()).Version)
		})
	}
}

func TestAppInfo_ReportsAccountingSettings(t *testing.T) {
	harare := time.FixedZone("CAT", 2*60*60)

	// 23:30 UTC is already the next day in Harare (UTC+2)
	clock := func() time.Time { return time.Date(2025, 6, 1, 23, 30, 0, 0, time.UTC) }

	cfg := config.StructuredConfig{
		App:     config.App{Version: "1.4.0"},
		Storage: config.Storage{DB: config.DB{Driver: "postgres"}},
	}
	svc, err := NewAppInfoService(cfg, "bcrypt", harare, clock, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, models.AppInfo{
		Version:        "1.4.0",
		QuotaTimeZone:  "CAT",
		QuotaDate:      "2025-06-02",
		PasswordScheme: "bcrypt",
		StorageDriver:  "postgres",
	}, svc.Info(context.Background()))
}

func TestAppInfo_Defaults(t *testing.T) {
	svc, err := NewAppInfoService(config.StructuredConfig{App: config.App{Version: "1"}}, "argon2id", nil, fixedClock, logger.Nop())
	require.NoError(t, err)

	info := svc.Info(context.Background())
	assert.Equal(t, "UTC", info.QuotaTimeZone)
	assert.Equal(t, "2025-06-01", info.QuotaDate)
	assert.Equal(t, config.DefaultDriver, info.StorageDriver)
}

func TestNewServices_RequiresVersion(t *testing.T) {
	cfg := config.StructuredConfig{App: config.App{PasswordScheme: "sha256"}}

	_, err := NewServices(nil, cfg, nil, logger.Nop())
	require.ErrorIs(t, err, ErrVersionIsNotSpecified)
}
