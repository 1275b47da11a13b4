package models

// AppInfo is what GET /api/version reports about the running service: the
// build version plus the settings that decide how access is accounted.
type AppInfo struct {
	Version string `json:"version"`
	// QuotaTimeZone is the IANA zone whose calendar date keys the daily quota.
	QuotaTimeZone string `json:"quota_time_zone"`
	// QuotaDate is today's quota date in QuotaTimeZone, as YYYY-MM-DD.
	QuotaDate      string `json:"quota_date"`
	PasswordScheme string `json:"password_scheme"`
	StorageDriver  string `json:"storage_driver"`
}
