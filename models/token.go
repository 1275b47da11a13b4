package models

import (
	"fmt"
	"strconv"

	"github.com/golang-jwt/jwt/v5"
)

// Token wraps a signed session token handed to an out-of-process UI.
//
// The "sub" claim holds the user id (empty for guests); SessionID binds the
// token to the session row opened at login so that logout can close it.
type Token struct {
	// Token is the underlying JWT token used for signing and claim inspection.
	*jwt.Token `json:"-"`

	jwt.RegisteredClaims

	// SessionID is the id of the session the token was issued for.
	SessionID int64 `json:"sid"`

	// Username is the audit snapshot of the principal.
	Username string `json:"name"`

	// Role is informational; every privileged call re-resolves the role
	// from storage.
	Role Role `json:"role"`

	// SignedString is the compact JWS representation of the token.
	SignedString string `json:"-"`
}

// Principal rebuilds the caller identity carried by the token.
func (t *Token) Principal() (Principal, error) {
	if t.Role == RoleGuest || t.Subject == "" {
		return Guest(), nil
	}

	userID, err := strconv.ParseInt(t.Subject, 10, 64)
	if err != nil {
		return Principal{}, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return Principal{UserID: &userID, Username: t.Username, Role: t.Role}, nil
}

// String returns the compact JWS serialization of the token.
func (t *Token) String() string {
	return t.SignedString
}
