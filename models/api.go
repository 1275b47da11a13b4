package models

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse is returned by the login and guest endpoints. The token is
// also sent in the Authorization header.
type LoginResponse struct {
	Token     string    `json:"token"`
	SessionID int64     `json:"session_id"`
	Principal Principal `json:"principal"`
}

// ErrorResponse is the body of every non-2xx response of the HTTP adapter.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

// IDResponse carries the id of a created row.
type IDResponse struct {
	ID int64 `json:"id"`
}

type SettingUpdateRequest struct {
	Value string `json:"value"`
}

type PasswordChangeRequest struct {
	Password string `json:"password"`
}

type RoleChangeRequest struct {
	Role Role `json:"role"`
}

type ActiveChangeRequest struct {
	Active bool `json:"active"`
}
