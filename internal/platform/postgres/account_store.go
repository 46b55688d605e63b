package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mriley/stash-api/internal/domain"
	"github.com/mriley/stash-api/internal/platform/logger"
	"github.com/mriley/stash-api/internal/store"
)

// AccountStore implements the store.AccountStore interface using a
// PostgreSQL database as the storage backend.
type AccountStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAccountStore creates a new PostgreSQL implementation of the
// AccountStore interface. It accepts a database connection or
// transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewAccountStore(db store.DBTX, logger *slog.Logger) *AccountStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &AccountStore{
		db:     db,
		logger: logger.With(slog.String("component", "account_store")),
	}
}

// Ensure AccountStore implements store.AccountStore interface
var _ store.AccountStore = (*AccountStore)(nil)

// Create implements store.AccountStore.Create
// It saves a new account to the database, handling domain validation.
// Returns store.ErrUsernameExists if the username is already taken.
func (s *AccountStore) Create(ctx context.Context, account *domain.Account) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := account.Validate(); err != nil {
		log.Warn("account validation failed during create",
			slog.String("error", err.Error()),
			slog.String("account_id", account.ID.String()))
		return err
	}

	// The store only ever persists the hash.
	if account.HashedPassword == "" {
		return domain.ErrEmptyHashedPassword
	}

	query := `
		INSERT INTO accounts (id, username, hashed_password, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		account.ID,
		account.Username,
		account.HashedPassword,
		account.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			log.Debug("username already exists",
				slog.String("account_id", account.ID.String()),
				slog.String("username", account.Username))
			return fmt.Errorf("%w: %s", store.ErrUsernameExists, account.Username)
		}

		log.Error("failed to create account",
			slog.String("error", err.Error()),
			slog.String("account_id", account.ID.String()))
		return err
	}

	log.Info("account created successfully",
		slog.String("account_id", account.ID.String()),
		slog.String("username", account.Username))
	return nil
}

// GetByID implements store.AccountStore.GetByID
// Returns store.ErrAccountNotFound if the account does not exist.
func (s *AccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving account by ID", slog.String("account_id", id.String()))

	query := `
		SELECT id, username, hashed_password, created_at
		FROM accounts
		WHERE id = $1
	`

	var account domain.Account
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&account.ID,
		&account.Username,
		&account.HashedPassword,
		&account.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("account not found", slog.String("account_id", id.String()))
			return nil, store.ErrAccountNotFound
		}
		log.Error("failed to get account by ID",
			slog.String("error", err.Error()),
			slog.String("account_id", id.String()))
		return nil, err
	}

	return &account, nil
}

// GetByUsername implements store.AccountStore.GetByUsername
// Returns store.ErrAccountNotFound if the account does not exist.
func (s *AccountStore) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving account by username", slog.String("username", username))

	query := `
		SELECT id, username, hashed_password, created_at
		FROM accounts
		WHERE username = $1
	`

	var account domain.Account
	err := s.db.QueryRowContext(ctx, query, username).Scan(
		&account.ID,
		&account.Username,
		&account.HashedPassword,
		&account.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("account not found", slog.String("username", username))
			return nil, store.ErrAccountNotFound
		}
		log.Error("failed to get account by username",
			slog.String("error", err.Error()),
			slog.String("username", username))
		return nil, err
	}

	return &account, nil
}

// WithTx implements store.AccountStore.WithTx
// It returns a new AccountStore that executes against the provided
// transaction instead of the base connection.
func (s *AccountStore) WithTx(tx *sql.Tx) store.AccountStore {
	return &AccountStore{
		db:     tx,
		logger: s.logger,
	}
}
