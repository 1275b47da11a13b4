package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

// SchemeSHA256 is the unsalted hex SHA-256 scheme of the original desktop
// database. It is kept so that existing rows still verify.
const SchemeSHA256 = "sha256"

type sha256Hasher struct{}

// NewSHA256Hasher returns the legacy hasher. New deployments should only use
// it for verification.
func NewSHA256Hasher() PasswordHasher {
	return sha256Hasher{}
}

func (sha256Hasher) Scheme() string { return SchemeSHA256 }

func (sha256Hasher) Hash(plaintext string) (string, error) {
	return legacyDigest(plaintext), nil
}

func (sha256Hasher) Verify(plaintext, stored string) bool {
	if !isLegacyDigest(stored) {
		return false
	}
	want := legacyDigest(plaintext)
	return subtle.ConstantTimeCompare([]byte(want), []byte(strings.ToLower(stored))) == 1
}

func (sha256Hasher) NeedsRehash(stored string) bool {
	return !isLegacyDigest(stored)
}

func legacyDigest(plaintext string) string {
	sum := sha256.Sum256([]byte(plaintext))
	return hex.EncodeToString(sum[:])
}

func isLegacyDigest(s string) bool {
	if len(s) != sha256.Size*2 {
		return false
	}
	_, err := hex.DecodeString(s)
	return err == nil
}
