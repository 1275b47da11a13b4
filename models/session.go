package models

import "time"

// SessionState is the lifecycle state of a session row.
type SessionState int

const (
	SessionUnopened SessionState = iota
	SessionOpen
	SessionClosed
)

func (s SessionState) String() string {
	switch s {
	case SessionOpen:
		return "open"
	case SessionClosed:
		return "closed"
	default:
		return "unopened"
	}
}

// Session stores one login period of a user (or of a guest, when UserID is
// nil). It is created at login and becomes immutable once closed.
type Session struct {
	ID     int64  `json:"id"`
	UserID *int64 `json:"user_id,omitempty"`

	// Username is filled in by read queries that join users; it is empty for
	// guest sessions.
	Username string `json:"username,omitempty"`

	LoginTime  time.Time  `json:"login_time"`
	LogoutTime *time.Time `json:"logout_time,omitempty"`

	// DurationMinutes is set together with LogoutTime and never before.
	DurationMinutes *int64 `json:"duration_minutes,omitempty"`
}

// State derives the lifecycle state from the stored columns.
func (s Session) State() SessionState {
	switch {
	case s.ID == 0:
		return SessionUnopened
	case s.LogoutTime == nil:
		return SessionOpen
	default:
		return SessionClosed
	}
}

// WholeMinutes returns the session duration truncated to whole minutes.
// A logout earlier than the login (clock step back) yields zero.
func WholeMinutes(login, logout time.Time) int64 {
	d := logout.Sub(login)
	if d < 0 {
		return 0
	}
	return int64(d / time.Minute)
}
