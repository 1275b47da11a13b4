package service

import (
	"errors"
	"fmt"
)

// Expected outcomes. The HTTP adapter maps each of them to a status code;
// in-process callers branch on them with errors.Is.
var (
	ErrUserNotFound  = errors.New("user not found")
	ErrUserInactive  = errors.New("user is inactive")
	ErrBadCredential = errors.New("bad credential")

	// ErrForbidden means the role lacks the action outright.
	ErrForbidden = errors.New("action is not permitted for role")

	// ErrQuotaExceeded means the role has the action but today's cap is used up.
	ErrQuotaExceeded = errors.New("daily quota exceeded")

	ErrSessionNotFound      = errors.New("session not found")
	ErrSessionAlreadyClosed = errors.New("session already closed")

	ErrInvalidDataProvided = errors.New("invalid data provided")
	ErrUsernameTaken       = errors.New("username is already taken")
	ErrUnknownSetting      = errors.New("unknown setting")
	ErrInvalidSettingValue = errors.New("invalid setting value")
	ErrArtifactMissing     = errors.New("report artifact does not exist")

	ErrVersionIsNotSpecified   = errors.New("app version is not specified")
	ErrTokenCreationFailed     = errors.New("token creation failed")
	ErrTokenIsExpiredOrInvalid = errors.New("token is expired or invalid")
)

// ErrStorage wraps every persistence failure. The attempted action did not
// happen: its audit entry and effects were rolled back together.
var ErrStorage = errors.New("storage error")

func storageErr(err error) error {
	return fmt.Errorf("%w: %w", ErrStorage, err)
}
