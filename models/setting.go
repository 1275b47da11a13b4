package models

import "time"

// Known system setting keys. The set is fixed; values are interpreted by the
// consuming component.
const (
	SettingStandardUserDailyQuota   = "standard_user_daily_quota"
	SettingSessionTimeoutMinutes    = "session_timeout_minutes"
	SettingDataRetentionDays        = "data_retention_days"
	SettingEnableEmailNotifications = "enable_email_notifications"
)

// Defaults mirror the values seeded by the initial migration.
const (
	DefaultStandardUserDailyQuota = 10
	DefaultSessionTimeoutMinutes  = 60
	DefaultDataRetentionDays      = 365
)

// SystemSetting is one row of the system_settings table.
type SystemSetting struct {
	Key         string     `json:"key"`
	Value       string     `json:"value"`
	Description string     `json:"description,omitempty"`
	UpdatedBy   string     `json:"updated_by,omitempty"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}
