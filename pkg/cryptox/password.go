package cryptox

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when no explicit cost is
// configured. Cost 10 keeps hashing around ~100ms on current hardware.
const DefaultCost = 10

// PasswordHasher produces and verifies salted bcrypt password hashes.
// The cost factor is fixed at construction so services can be handed a
// cheaper hasher in tests.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher with the given bcrypt cost. Costs
// outside bcrypt's supported range fall back to DefaultCost rather than
// erroring, misconfiguration should never weaken hashing below the floor.
func NewPasswordHasher(cost int) PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return PasswordHasher{cost: cost}
}

// Hash derives a one-way hash of plaintext with a random per-hash salt.
// The salt is embedded in the returned string; two calls with the same
// input produce different outputs.
func (h PasswordHasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("cryptox: hash password: %w", err)
	}
	return string(b), nil
}

// Verify recomputes the hash using the salt embedded in encoded and
// compares in constant time. It reports false for mismatches and for
// malformed hash strings; it never panics.
func (h PasswordHasher) Verify(plaintext, encoded string) bool {
	return bcrypt.CompareHashAndPassword([]byte(encoded), []byte(plaintext)) == nil
}
