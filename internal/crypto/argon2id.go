// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"strings"

	"golang.org/x/crypto/argon2"
)

// SchemeArgon2id is the default scheme for new hashes.
const SchemeArgon2id = "argon2id"

const argon2idPrefix = "$argon2id$"

// Argon2Params tunes the Argon2id KDF. Stored hashes carry their own
// parameters, so changing these only affects new hashes (and triggers a
// rehash of old ones on next login).
type Argon2Params struct {
	Time    uint32
	Memory  uint32 // KiB
	Threads uint8
	KeyLen  uint32
	SaltLen uint32
}

// DefaultArgon2Params follows the OWASP recommendation:
//   - time cost:   1 iteration
//   - memory cost: 64 MiB
//   - parallelism: 4 threads
//   - key length:  32 bytes
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		Time:    1,
		Memory:  64 * 1024,
		Threads: 4,
		KeyLen:  32,
		SaltLen: 16,
	}
}

type argon2idHasher struct {
	params Argon2Params
}

// NewArgon2idHasher returns a hasher producing PHC-encoded strings:
//
//	$argon2id$v=19$m=65536,t=1,p=4$<salt>$<key>
//
// with salt and key in unpadded standard base64.
func NewArgon2idHasher(params Argon2Params) PasswordHasher {
	return &argon2idHasher{params: params}
}

func (h *argon2idHasher) Scheme() string { return SchemeArgon2id }

func (h *argon2idHasher) Hash(plaintext string) (string, error) {
	salt := make([]byte, h.params.SaltLen)
	if _, err := io.ReadFull(rand.Reader, salt); err != nil {
		return "", fmt.Errorf("generate salt: %w", err)
	}

	key := argon2.IDKey([]byte(plaintext), salt, h.params.Time, h.params.Memory, h.params.Threads, h.params.KeyLen)

	return fmt.Sprintf("%sv=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2idPrefix,
		argon2.Version,
		h.params.Memory, h.params.Time, h.params.Threads,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	), nil
}

func (h *argon2idHasher) Verify(plaintext, stored string) bool {
	decoded, err := decodeArgon2id(stored)
	if err != nil {
		return false
	}

	key := argon2.IDKey([]byte(plaintext), decoded.salt,
		decoded.params.Time, decoded.params.Memory, decoded.params.Threads, uint32(len(decoded.key)))

	return subtle.ConstantTimeCompare(key, decoded.key) == 1
}

func (h *argon2idHasher) NeedsRehash(stored string) bool {
	decoded, err := decodeArgon2id(stored)
	if err != nil {
		return true
	}
	p := decoded.params
	return p.Time != h.params.Time ||
		p.Memory != h.params.Memory ||
		p.Threads != h.params.Threads ||
		uint32(len(decoded.key)) != h.params.KeyLen
}

type argon2idHash struct {
	params Argon2Params
	salt   []byte
	key    []byte
}

func decodeArgon2id(stored string) (argon2idHash, error) {
	// "", "argon2id", "v=19", "m=..,t=..,p=..", salt, key
	parts := strings.Split(stored, "$")
	if len(parts) != 6 || parts[1] != SchemeArgon2id {
		return argon2idHash{}, ErrMalformedHash
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return argon2idHash{}, ErrMalformedHash
	}

	var out argon2idHash
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &out.params.Memory, &out.params.Time, &out.params.Threads); err != nil {
		return argon2idHash{}, ErrMalformedHash
	}
	if out.params.Time == 0 || out.params.Threads == 0 {
		return argon2idHash{}, ErrMalformedHash
	}

	var err error
	if out.salt, err = base64.RawStdEncoding.DecodeString(parts[4]); err != nil {
		return argon2idHash{}, ErrMalformedHash
	}
	if out.key, err = base64.RawStdEncoding.DecodeString(parts[5]); err != nil || len(out.key) == 0 {
		return argon2idHash{}, ErrMalformedHash
	}
	out.params.SaltLen = uint32(len(out.salt))
	out.params.KeyLen = uint32(len(out.key))

	return out, nil
}
