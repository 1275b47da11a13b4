// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
)

// Detect names the scheme a stored hash was produced with, or "" when the
// value matches none of them.
func Detect(stored string) string {
	switch {
	case strings.HasPrefix(stored, argon2idPrefix):
		return SchemeArgon2id
	case strings.HasPrefix(stored, "$2a$"), strings.HasPrefix(stored, "$2b$"), strings.HasPrefix(stored, "$2y$"):
		return SchemeBcrypt
	case isLegacyDigest(stored):
		return SchemeSHA256
	default:
		return ""
	}
}

// Hasher hashes with one preferred scheme and verifies any known scheme.
type Hasher struct {
	preferred PasswordHasher
	byScheme  map[string]PasswordHasher
}

// NewPasswordHasher builds a [Hasher] that produces hashes with scheme and
// still verifies the other two.
func NewPasswordHasher(scheme string) (*Hasher, error) {
	return newHasher(scheme, DefaultArgon2Params(), bcrypt.DefaultCost)
}

// NewPasswordHasherWithParams is NewPasswordHasher with explicit argon2id
// parameters and bcrypt cost. Tests use it with cheap parameters.
func NewPasswordHasherWithParams(scheme string, argon Argon2Params, bcryptCost int) (*Hasher, error) {
	return newHasher(scheme, argon, bcryptCost)
}

func newHasher(scheme string, argon Argon2Params, bcryptCost int) (*Hasher, error) {
	byScheme := map[string]PasswordHasher{
		SchemeSHA256:   NewSHA256Hasher(),
		SchemeArgon2id: NewArgon2idHasher(argon),
		SchemeBcrypt:   NewBcryptHasher(bcryptCost),
	}

	preferred, ok := byScheme[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScheme, scheme)
	}

	return &Hasher{preferred: preferred, byScheme: byScheme}, nil
}

func (h *Hasher) Scheme() string { return h.preferred.Scheme() }

func (h *Hasher) Hash(plaintext string) (string, error) {
	return h.preferred.Hash(plaintext)
}

func (h *Hasher) Verify(plaintext, stored string) bool {
	hs, ok := h.byScheme[Detect(stored)]
	if !ok {
		return false
	}
	return hs.Verify(plaintext, stored)
}

// NeedsRehash is true for hashes of another scheme and for hashes of the
// preferred scheme made with outdated parameters.
func (h *Hasher) NeedsRehash(stored string) bool {
	if Detect(stored) != h.preferred.Scheme() {
		return true
	}
	return h.preferred.NeedsRehash(stored)
}
