package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

const (
	// DefaultCost is the bcrypt work factor used for account passwords.
	DefaultCost = bcrypt.DefaultCost
)

var (
	ErrEmptyPassword     = errors.New("password cannot be empty")
	ErrHashingPassword   = errors.New("failed to hash password")
	ErrInvalidPassword   = errors.New("invalid password")
	ErrVerifyingPassword = errors.New("failed to verify password")
)

// Hash generates a bcrypt hash of the password.
func Hash(password string) (string, error) {
	if password == "" {
		return "", ErrEmptyPassword
	}

	bytes, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrHashingPassword, err)
	}

	return string(bytes), nil
}

// Verify checks the password against a bcrypt hash. A mismatch returns
// ErrInvalidPassword; a malformed hash returns ErrVerifyingPassword.
func Verify(password, hash string) error {
	if password == "" || hash == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}

		return fmt.Errorf("%w: %v", ErrVerifyingPassword, err)
	}

	return nil
}
