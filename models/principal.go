package models

// GuestUsername is the audit snapshot recorded for guest activity.
const GuestUsername = "guest"

// Principal is the identity a caller acts as. A guest principal has a nil
// UserID and the Guest role.
type Principal struct {
	UserID   *int64 `json:"user_id,omitempty"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// Guest returns the sentinel "no identity" principal.
func Guest() Principal {
	return Principal{Username: GuestUsername, Role: RoleGuest}
}

// IsGuest reports whether p has no backing user row.
func (p Principal) IsGuest() bool {
	return p.UserID == nil
}

// ID returns the user id, or 0 for a guest.
func (p Principal) ID() int64 {
	if p.UserID == nil {
		return 0
	}
	return *p.UserID
}
