// Package passwords hashes and verifies account passwords with bcrypt.
package passwords

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// MinLength is the shortest password accepted at registration.
const MinLength = 6

var (
	// ErrTooShort is returned by Hash for passwords shorter than MinLength.
	ErrTooShort = errors.New("password must be at least 6 characters")
	// ErrMismatch is returned by Check when the password does not match.
	ErrMismatch = errors.New("password does not match")
)

// Hash returns a bcrypt hash of the password.
func Hash(password string) (string, error) {
	if len(password) < MinLength {
		return "", ErrTooShort
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Check compares a password against a stored hash.
func Check(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrMismatch
		}
		return err
	}
	return nil
}
