package store

import (
	"errors"
	"fmt"
)

// Common store errors used across all store implementations.
var (
	// ErrNotFound is returned when a requested entity does not exist in
	// the store. This is the generic version of the entity-specific
	// not found errors (e.g., ErrAccountNotFound, ErrItemNotFound).
	ErrNotFound = errors.New("entity not found")

	// ErrDuplicate is returned when an operation would create a duplicate
	// of a unique entity (e.g., an account with the same username).
	ErrDuplicate = errors.New("entity already exists")

	// ErrInvalidEntity is returned when an entity fails validation before
	// being stored. Check the wrapped error for specific validation details.
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrTransactionFailed is returned when a database transaction fails
	// to commit or when an operation within a transaction fails.
	ErrTransactionFailed = errors.New("transaction failed")

	// Entity-specific "not found" errors

	// ErrAccountNotFound indicates that the requested account does not exist.
	ErrAccountNotFound = fmt.Errorf("%w: account", ErrNotFound)

	// ErrItemNotFound indicates that the requested item does not exist.
	ErrItemNotFound = fmt.Errorf("%w: item", ErrNotFound)

	// Entity-specific "duplicate" errors

	// ErrUsernameExists indicates that an account with the given username
	// already exists. Uniqueness is enforced by the store's constraint,
	// not pre-checked.
	ErrUsernameExists = fmt.Errorf("%w: username", ErrDuplicate)
)

// IsNotFoundError checks if the error is any kind of "not found" error.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsDuplicateError checks if the error is any kind of "duplicate" error.
func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
