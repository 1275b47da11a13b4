package models

import "time"

// User represents an account entity used for authentication and authorization.
// Username is unique and never changes after provisioning; users are never
// hard-deleted, deactivation is the only way to retire an account.
type User struct {
	// UserID is the internal unique identifier of the user.
	UserID int64 `json:"id"`

	// Username is the unique login name. Immutable.
	Username string `json:"username"`

	// PasswordHash is the stored credential hash in one of the supported
	// encodings (legacy sha256 hex, argon2id PHC string or bcrypt).
	// Sensitive; never serialized.
	PasswordHash string `json:"-"`

	Role     Role   `json:"role"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`

	// Active is false for deactivated accounts; they cannot authenticate.
	Active bool `json:"active"`

	// DailyPredictionCount is the usage counter for the quota epoch named by
	// LastPredictionDate.
	DailyPredictionCount int `json:"daily_prediction_count"`

	// LastPredictionDate is the local calendar date (YYYY-MM-DD) of the quota
	// epoch the counter belongs to. Empty when the user never consumed quota.
	LastPredictionDate string `json:"last_prediction_date,omitempty"`

	CreatedAt time.Time  `json:"created_at"`
	LastLogin *time.Time `json:"last_login,omitempty"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// Principal returns the identity that acts on behalf of u.
func (u User) Principal() Principal {
	id := u.UserID
	return Principal{UserID: &id, Username: u.Username, Role: u.Role}
}

// NewUser carries the provisioning input for a new account.
type NewUser struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
}
