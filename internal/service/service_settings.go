package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/MKhiriev/crimewatch-access/internal/logger"
	"github.com/MKhiriev/crimewatch-access/internal/store"
	"github.com/MKhiriev/crimewatch-access/models"
)

// settingValidators normalise a raw value for each known key. The key set is
// fixed; anything else is ErrUnknownSetting.
var settingValidators = map[string]func(string) (string, error){
	models.SettingStandardUserDailyQuota:   intSetting(0),
	models.SettingSessionTimeoutMinutes:    intSetting(1),
	models.SettingDataRetentionDays:        intSetting(1),
	models.SettingEnableEmailNotifications: boolSetting,
}

func intSetting(min int) func(string) (string, error) {
	return func(raw string) (string, error) {
		v, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil || v < min {
			return "", fmt.Errorf("%w: want an integer >= %d, got %q", ErrInvalidSettingValue, min, raw)
		}
		return strconv.Itoa(v), nil
	}
}

func boolSetting(raw string) (string, error) {
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return "", fmt.Errorf("%w: want a boolean, got %q", ErrInvalidSettingValue, raw)
	}
	return strconv.FormatBool(v), nil
}

// settingsService reads settings fresh on every call, so an administrative
// change applies to the next operation without a restart.
type settingsService struct {
	store  Store
	now    Clock
	logger *logger.Logger
}

func NewSettingsService(db Store, clock Clock, logger *logger.Logger) SettingsService {
	return &settingsService{
		store:  db,
		now:    clock,
		logger: logger,
	}
}

func (s *settingsService) All(ctx context.Context) ([]models.SystemSetting, error) {
	settings, err := s.store.Repositories().Settings.ListSettings(ctx)
	if err != nil {
		return nil, storageErr(err)
	}
	return settings, nil
}

func (s *settingsService) Get(ctx context.Context, key string) (models.SystemSetting, error) {
	if _, ok := settingValidators[key]; !ok {
		return models.SystemSetting{}, ErrUnknownSetting
	}

	st, err := s.store.Repositories().Settings.GetSetting(ctx, key)
	if errors.Is(err, store.ErrNoSettingWasFound) {
		return models.SystemSetting{}, ErrUnknownSetting
	}
	if err != nil {
		return models.SystemSetting{}, storageErr(err)
	}
	return st, nil
}

func (s *settingsService) StandardUserDailyQuota(ctx context.Context) int {
	return s.intValue(ctx, models.SettingStandardUserDailyQuota, models.DefaultStandardUserDailyQuota)
}

func (s *settingsService) SessionTimeout(ctx context.Context) time.Duration {
	return time.Duration(s.intValue(ctx, models.SettingSessionTimeoutMinutes, models.DefaultSessionTimeoutMinutes)) * time.Minute
}

func (s *settingsService) DataRetentionDays(ctx context.Context) int {
	return s.intValue(ctx, models.SettingDataRetentionDays, models.DefaultDataRetentionDays)
}

func (s *settingsService) EmailNotificationsEnabled(ctx context.Context) bool {
	st, err := s.store.Repositories().Settings.GetSetting(ctx, models.SettingEnableEmailNotifications)
	if err != nil {
		return false
	}
	v, err := strconv.ParseBool(st.Value)
	return err == nil && v
}

// intValue falls back to def on storage errors and malformed values.
func (s *settingsService) intValue(ctx context.Context, key string, def int) int {
	v, err := readIntSetting(ctx, s.store.Repositories().Settings, key, def)
	if err != nil {
		logger.FromContext(ctx).Warn().Err(err).Str("func", "settingsService.intValue").Str("key", key).Msg("using default setting value")
		return def
	}
	return v
}

// Update changes one setting. Requires ManageSettings; the change is audited
// as SettingChanged in the same transaction.
func (s *settingsService) Update(ctx context.Context, actor models.Principal, key, value string) (models.SystemSetting, error) {
	validate, ok := settingValidators[key]
	if !ok {
		return models.SystemSetting{}, ErrUnknownSetting
	}
	normalised, err := validate(value)
	if err != nil {
		return models.SystemSetting{}, err
	}

	var (
		updated models.SystemSetting
		outcome error
	)
	err = s.store.InTx(ctx, func(repos store.Repositories) error {
		now := s.now()

		user, permitted, err := authorize(ctx, repos, actor, models.ActionManageSettings, now)
		if err != nil {
			return err
		}
		if !permitted {
			outcome = ErrForbidden
			return nil
		}

		old, err := repos.Settings.GetSetting(ctx, key)
		if errors.Is(err, store.ErrNoSettingWasFound) {
			outcome = ErrUnknownSetting
			return nil
		}
		if err != nil {
			return err
		}

		if err := repos.Settings.UpdateSetting(ctx, key, normalised, user.Username, now); err != nil {
			return err
		}

		details := fmt.Sprintf("%s: %s -> %s", key, old.Value, normalised)
		if _, err := appendAudit(ctx, repos, auditEntry(user.Principal(), models.AuditSettingChanged, details), now); err != nil {
			return err
		}

		at := now.UTC()
		updated = old
		updated.Value = normalised
		updated.UpdatedBy = user.Username
		updated.UpdatedAt = &at
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "settingsService.Update").Str("key", key).Msg("failed to update setting")
		return models.SystemSetting{}, storageErr(err)
	}
	if outcome != nil {
		return models.SystemSetting{}, outcome
	}

	return updated, nil
}
