package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mriley/stash-api/internal/domain"
)

// AccountStore defines the interface for account data persistence.
type AccountStore interface {
	// Create saves a new account to the store. The account must already
	// carry its hashed password; the store never sees the plaintext.
	// Returns ErrUsernameExists if the username is already taken.
	Create(ctx context.Context, account *domain.Account) error

	// GetByID retrieves an account by its unique ID.
	// Returns ErrAccountNotFound if the account does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error)

	// GetByUsername retrieves an account by its username.
	// Returns ErrAccountNotFound if the account does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.Account, error)

	// WithTx returns a new AccountStore instance that uses the provided
	// transaction. The transaction is created and managed by the caller
	// (typically a service).
	WithTx(tx *sql.Tx) AccountStore
}
