package crypto

import "errors"

var (
	// ErrUnknownScheme is returned by [NewPasswordHasher] for a scheme name
	// it cannot build.
	ErrUnknownScheme = errors.New("unknown password hash scheme")
	// ErrMalformedHash marks a stored hash that cannot be decoded.
	ErrMalformedHash = errors.New("malformed password hash")
)
