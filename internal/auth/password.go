package auth

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// PasswordCost - bcrypt work factor for stored passwords.
const PasswordCost = 10

// PasswordHasher hashes and checks passwords with bcrypt. Each hash carries its own
// salt, so equal passwords never share a hash.
type PasswordHasher struct {
	Cost int
}

func NewPasswordHasher() *PasswordHasher {
	return &PasswordHasher{Cost: PasswordCost}
}

// Hash returns the bcrypt hash of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	cost := h.Cost
	if cost == 0 {
		cost = PasswordCost
	}
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	return string(bytes), err
}

// Check reports whether password matches hash. A malformed hash is a mismatch.
func (h *PasswordHasher) Check(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

// ValidateNewPassword rejects empty passwords and ones bcrypt cannot hash.
func ValidateNewPassword(password string) error {
	if password == "" {
		return errors.New("password must not be empty")
	}
	if len(password) > 72 {
		return errors.New("password must be at most 72 bytes long")
	}
	return nil
}
