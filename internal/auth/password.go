// Package auth provides the password hashing seam.
//
// The system this service replaces stored and compared passwords as plain
// text. That behavior is kept available behind the Hasher interface for
// byte-for-byte API parity, but it is never the right choice for a real
// deployment; bcrypt is the default.
package auth

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Password hashing cost. 12 is a good balance between security and performance.
const bcryptCost = 12

// ErrInvalidPassword is returned when a password comparison fails.
var ErrInvalidPassword = errors.New("invalid password")

// Hasher turns a raw password into its stored form and checks a candidate
// against a stored value.
type Hasher interface {
	Hash(password string) (string, error)
	// Compare returns ErrInvalidPassword when the candidate does not match.
	Compare(stored, password string) error
}

// BcryptHasher implements Hasher with bcrypt.
type BcryptHasher struct {
	cost int
}

func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{cost: bcryptCost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	if password == "" {
		return "", ErrInvalidPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(stored, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(stored), []byte(password))
	if err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			return ErrInvalidPassword
		}
		return err
	}
	return nil
}

// PlainHasher stores passwords verbatim and compares them in constant time.
// Only for parity testing against the legacy API.
type PlainHasher struct{}

func NewPlainHasher() *PlainHasher {
	return &PlainHasher{}
}

func (h *PlainHasher) Hash(password string) (string, error) {
	return password, nil
}

func (h *PlainHasher) Compare(stored, password string) error {
	if subtle.ConstantTimeCompare([]byte(stored), []byte(password)) != 1 {
		return ErrInvalidPassword
	}
	return nil
}
