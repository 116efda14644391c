package domain

import (
	"strings"
)

// Account is a registered user. Accounts are keyed by email; they are created
// once at signup and never mutated afterwards.
type Account struct {
	// ID is assigned by the repository at insertion.
	ID    int
	Email string
	// Password holds whatever the configured hasher produced. With the
	// plaintext hasher this is the raw password, kept for parity with the
	// system this service replaces; see auth.Hasher.
	Password string
}

// NewAccount builds an account with a normalized email. No validation runs
// here; call ValidateSignUp first.
func NewAccount(email, password string) *Account {
	return &Account{
		Email:    strings.TrimSpace(email),
		Password: password,
	}
}

// ValidateSignUp checks email, password and the confirmation password,
// aggregating every failure. The password rule runs on both password values,
// then equality is required.
func (a *Account) ValidateSignUp(confirm string) error {
	var acc Accumulator
	var rules Rules

	rules.Email(a.Email, &acc)
	rules.Password(a.Password, &acc)
	rules.Password(confirm, &acc)
	rules.PasswordMatch(a.Password, confirm, &acc)

	return acc.Err()
}

// ValidateCredentials checks the shape of login credentials, aggregating
// every failure. It says nothing about whether the account exists.
func ValidateCredentials(email, password string) error {
	var acc Accumulator
	var rules Rules

	rules.Email(email, &acc)
	rules.Password(password, &acc)

	return acc.Err()
}

// Session marks an account as currently logged in. An account has at most
// one session entry; there is no expiry.
type Session struct {
	Email string
	ID    int
}
