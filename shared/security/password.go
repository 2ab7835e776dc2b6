package security

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// bcrypt cost factors. Interactive login hashes are written at the
// default cost; password-reset writes use the stricter cost.
const (
	HashCost      = 10
	ResetHashCost = 12
)

// HashPassword hashes a plaintext password at the given bcrypt cost.
func HashPassword(password string, cost int) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// VerifyPassword compares a plaintext password against a stored digest.
// It is stateless and safe for concurrent use.
func VerifyPassword(password, hash string) (bool, error) {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
