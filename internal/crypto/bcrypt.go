package crypto

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// SchemeBcrypt selects golang.org/x/crypto/bcrypt.
const SchemeBcrypt = "bcrypt"

type bcryptHasher struct {
	cost int
}

// NewBcryptHasher returns a bcrypt hasher. A cost outside the bcrypt range
// falls back to bcrypt.DefaultCost.
func NewBcryptHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Scheme() string { return SchemeBcrypt }

func (h *bcryptHasher) Hash(plaintext string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("bcrypt: %w", err)
	}
	return string(hashed), nil
}

func (h *bcryptHasher) Verify(plaintext, stored string) bool {
	return bcrypt.CompareHashAndPassword([]byte(stored), []byte(plaintext)) == nil
}

func (h *bcryptHasher) NeedsRehash(stored string) bool {
	cost, err := bcrypt.Cost([]byte(stored))
	return err != nil || cost != h.cost
}
