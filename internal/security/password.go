package security

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinBcryptCost     = bcrypt.MinCost
	DefaultBcryptCost = bcrypt.DefaultCost
	MaxBcryptCost     = bcrypt.MaxCost
)

// PasswordHasher produces and verifies salted bcrypt password hashes.
// The cost factor is fixed at construction time.
type PasswordHasher struct {
	cost int
}

func NewPasswordHasher(cost int) (*PasswordHasher, error) {
	if cost < MinBcryptCost || cost > MaxBcryptCost {
		return nil, fmt.Errorf("bcrypt cost %d out of range [%d, %d]", cost, MinBcryptCost, MaxBcryptCost)
	}
	return &PasswordHasher{cost: cost}, nil
}

func (h *PasswordHasher) Hash(password string) (string, error) {
	out, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(out), nil
}

// Check reports whether password matches the stored hash. A malformed hash
// yields false, identical to a wrong password: callers must not be able to
// tell a corrupt stored hash apart from a bad credential.
func (h *PasswordHasher) Check(password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
