package models

import "time"

// Audit actions that are not themselves an [Action]. Consumed actions are
// recorded under their Action name (e.g. "Predict").
const (
	AuditLogin           = "Login"
	AuditLoginFailed     = "LoginFailed"
	AuditLogout          = "Logout"
	AuditSessionExpired  = "SessionExpired"
	AuditAccessDenied    = "AccessDenied"
	AuditQuotaExceeded   = "QuotaExceeded"
	AuditPrediction      = "Prediction"
	AuditReportGenerated = "ReportGenerated"
	AuditUserCreated     = "UserCreated"
	AuditPasswordChanged = "PasswordChanged"
	AuditRoleChanged     = "RoleChanged"
	AuditUserActivated   = "UserActivated"
	AuditUserDeactivated = "UserDeactivated"
	AuditSettingChanged  = "SettingChanged"
)

// AuditEntry is one append-only audit record. Username is a snapshot taken
// at write time so that history survives later account edits.
type AuditEntry struct {
	ID        int64     `json:"id"`
	UserID    *int64    `json:"user_id,omitempty"`
	Username  string    `json:"username"`
	Action    string    `json:"action"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// AuditFilter narrows an ordered audit retrieval. Zero values mean "any".
type AuditFilter struct {
	UserID   *int64
	Username string
	Action   string
	From     time.Time
	To       time.Time
	Limit    uint64

	// Newest reverses the order so that Limit keeps the most recent entries.
	Newest bool
}

// NewAuditEntry builds an entry attributed to p.
func NewAuditEntry(p Principal, action, details string) AuditEntry {
	return AuditEntry{
		UserID:   p.UserID,
		Username: p.Username,
		Action:   action,
		Details:  details,
	}
}
