package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mriley/stash-api/internal/domain"
	"github.com/mriley/stash-api/internal/service/auth"
	"github.com/mriley/stash-api/internal/store"
)

// AccountService provides registration and credential verification.
type AccountService interface {
	// Register creates a new account with the given username and
	// password. The password is hashed before it reaches the store.
	// Returns store.ErrUsernameExists if the username is taken.
	Register(ctx context.Context, username, password string) (*domain.Account, error)

	// Authenticate verifies the username/password pair and returns the
	// matching account. Returns ErrInvalidCredentials for both an
	// unknown username and a wrong password.
	Authenticate(ctx context.Context, username, password string) (*domain.Account, error)
}

// AccountServiceImpl implements the AccountService interface.
type AccountServiceImpl struct {
	accountStore store.AccountStore
	hasher       auth.PasswordHasher
	verifier     auth.PasswordVerifier
	db           *sql.DB
	logger       *slog.Logger
}

// NewAccountService creates a new AccountService.
func NewAccountService(
	accountStore store.AccountStore,
	hasher auth.PasswordHasher,
	verifier auth.PasswordVerifier,
	db *sql.DB,
	logger *slog.Logger,
) AccountService {
	return &AccountServiceImpl{
		accountStore: accountStore,
		hasher:       hasher,
		verifier:     verifier,
		db:           db,
		logger:       logger.With("component", "account_service"),
	}
}

// Register creates a new account with the given username and password.
// Uses a transaction to ensure atomicity of the operation. Uniqueness
// is not pre-checked; the store's constraint is the only enforcement.
func (s *AccountServiceImpl) Register(
	ctx context.Context,
	username, password string,
) (*domain.Account, error) {
	account, err := domain.NewAccount(username, password)
	if err != nil {
		s.logger.Warn("failed to create account object",
			"error", err,
			"username", username)
		return nil, fmt.Errorf("failed to register account: %w", err)
	}

	hashed, err := s.hasher.Hash(account.Password)
	if err != nil {
		s.logger.Error("failed to hash password",
			"error", err,
			"username", username)
		return nil, fmt.Errorf("failed to register account: %w", err)
	}
	account.HashedPassword = hashed
	account.Password = "" // Plaintext is never stored

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.accountStore.WithTx(tx)
		return txStore.Create(ctx, account)
	})

	if err != nil {
		if errors.Is(err, store.ErrUsernameExists) {
			s.logger.Debug("attempted to register existing username",
				"username", username)
		} else {
			s.logger.Error("failed to save account",
				"error", err,
				"username", username)
		}
		return nil, fmt.Errorf("failed to register account: %w", err)
	}

	s.logger.Info("account registered successfully",
		"account_id", account.ID,
		"username", account.Username)

	return account, nil
}

// Authenticate verifies the username/password pair.
// Unknown username and wrong password both produce ErrInvalidCredentials
// so the response shape never reveals which part was wrong.
func (s *AccountServiceImpl) Authenticate(
	ctx context.Context,
	username, password string,
) (*domain.Account, error) {
	var account *domain.Account

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.accountStore.WithTx(tx)

		found, err := txStore.GetByUsername(ctx, username)
		if err != nil {
			return err
		}
		account = found
		return nil
	})

	if err != nil {
		if errors.Is(err, store.ErrAccountNotFound) {
			s.logger.Debug("authentication failed: unknown username",
				"username", username)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("failed to look up account",
			"error", err,
			"username", username)
		return nil, fmt.Errorf("failed to authenticate: %w", err)
	}

	if err := s.verifier.Compare(account.HashedPassword, password); err != nil {
		s.logger.Debug("authentication failed: wrong password",
			"username", username)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("account authenticated successfully",
		"account_id", account.ID,
		"username", account.Username)

	return account, nil
}
