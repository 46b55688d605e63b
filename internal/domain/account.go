package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for accounts. All wrap ErrValidation so
// callers can match the category without naming each field.
var (
	ErrEmptyAccountID      = fmt.Errorf("%w: account ID cannot be empty", ErrValidation)
	ErrEmptyUsername       = fmt.Errorf("%w: username cannot be empty", ErrValidation)
	ErrEmptyPassword       = fmt.Errorf("%w: password cannot be empty", ErrValidation)
	ErrEmptyHashedPassword = fmt.Errorf("%w: hashed password cannot be empty", ErrValidation)
)

// Account represents a registered credential record: a username and a
// one-way hash of the password. The plaintext password is held only
// transiently during registration and is never persisted.
type Account struct {
	ID             uuid.UUID `json:"id"`
	Username       string    `json:"username"`
	Password       string    `json:"-"` // Plaintext, used only during registration
	HashedPassword string    `json:"-"` // Never exposed in JSON
	CreatedAt      time.Time `json:"created_at"`
}

// NewAccount creates a new Account with the given username and password.
// It generates the account ID and sets the creation timestamp.
//
// NOTE: The caller is responsible for hashing the password before the
// account is stored.
func NewAccount(username, password string) (*Account, error) {
	account := &Account{
		ID:        uuid.New(),
		Username:  username,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}

	if err := account.Validate(); err != nil {
		return nil, err
	}

	return account, nil
}

// Validate checks if the Account has valid data.
func (a *Account) Validate() error {
	if a.ID == uuid.Nil {
		return ErrEmptyAccountID
	}

	if a.Username == "" {
		return ErrEmptyUsername
	}

	if a.Password == "" {
		// Accounts loaded from the store carry only the hash.
		if a.HashedPassword == "" {
			return ErrEmptyPassword
		}
	}

	return nil
}
