package crypto

//go:generate mockgen -source=interfaces.go -destination=../mock/password_hasher_mock.go -package=mock

// PasswordHasher produces and checks stored password hashes.
//
// Every hash carries enough information to identify its own scheme, so one
// store may hold legacy, argon2id and bcrypt credentials at the same time.
type PasswordHasher interface {
	// Scheme names the scheme new hashes are produced with.
	Scheme() string

	// Hash returns the encoded hash of plaintext.
	Hash(plaintext string) (string, error)

	// Verify reports whether plaintext matches stored. A malformed or
	// foreign stored value never matches.
	Verify(plaintext, stored string) bool

	// NeedsRehash reports whether stored should be replaced by a fresh
	// Hash after a successful Verify.
	NeedsRehash(stored string) bool
}
