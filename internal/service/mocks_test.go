package service_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mriley/stash-api/internal/domain"
	"github.com/mriley/stash-api/internal/store"
	"github.com/stretchr/testify/require"
)

// The services only use *sql.DB to scope each operation in a
// transaction; the stores under test are in-memory fakes. This no-op
// driver lets RunInTransaction begin and commit without a database.

type noopDriver struct{}

func (d *noopDriver) Open(name string) (driver.Conn, error) { return &noopConn{}, nil }

type noopConn struct{}

func (c *noopConn) Prepare(query string) (driver.Stmt, error) {
	return nil, fmt.Errorf("prepare not supported")
}
func (c *noopConn) Close() error              { return nil }
func (c *noopConn) Begin() (driver.Tx, error) { return &noopTx{}, nil }

type noopTx struct{}

func (t *noopTx) Commit() error   { return nil }
func (t *noopTx) Rollback() error { return nil }

func init() {
	sql.Register("servicetest", &noopDriver{})
}

// newTestDB returns a *sql.DB backed by the no-op driver.
func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("servicetest", "")
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Close()
	})
	return db
}

// newTestLogger returns a logger that discards all output.
func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAccountStore is an in-memory store.AccountStore.
type fakeAccountStore struct {
	accounts map[string]*domain.Account // keyed by username
}

func newFakeAccountStore() *fakeAccountStore {
	return &fakeAccountStore{accounts: make(map[string]*domain.Account)}
}

func (s *fakeAccountStore) Create(ctx context.Context, account *domain.Account) error {
	if err := account.Validate(); err != nil {
		return err
	}
	if _, exists := s.accounts[account.Username]; exists {
		return fmt.Errorf("%w: %s", store.ErrUsernameExists, account.Username)
	}
	copied := *account
	s.accounts[account.Username] = &copied
	return nil
}

func (s *fakeAccountStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	for _, account := range s.accounts {
		if account.ID == id {
			copied := *account
			return &copied, nil
		}
	}
	return nil, store.ErrAccountNotFound
}

func (s *fakeAccountStore) GetByUsername(ctx context.Context, username string) (*domain.Account, error) {
	account, ok := s.accounts[username]
	if !ok {
		return nil, store.ErrAccountNotFound
	}
	copied := *account
	return &copied, nil
}

func (s *fakeAccountStore) WithTx(tx *sql.Tx) store.AccountStore { return s }

// fakeItemStore is an in-memory store.ItemStore.
type fakeItemStore struct {
	items map[uuid.UUID]*domain.Item
}

func newFakeItemStore() *fakeItemStore {
	return &fakeItemStore{items: make(map[uuid.UUID]*domain.Item)}
}

func (s *fakeItemStore) Create(ctx context.Context, item *domain.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	copied := *item
	s.items[item.ID] = &copied
	return nil
}

func (s *fakeItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	item, ok := s.items[id]
	if !ok {
		return nil, store.ErrItemNotFound
	}
	copied := *item
	return &copied, nil
}

func (s *fakeItemStore) List(ctx context.Context, filter store.ItemFilter) ([]*domain.Item, error) {
	items := []*domain.Item{}
	for _, item := range s.items {
		if filter.CreatedAfter != nil && item.CreatedAt.Before(*filter.CreatedAfter) {
			continue
		}
		if filter.CreatedBefore != nil && item.CreatedAt.After(*filter.CreatedBefore) {
			continue
		}
		copied := *item
		items = append(items, &copied)
	}
	return items, nil
}

func (s *fakeItemStore) Update(ctx context.Context, item *domain.Item) error {
	if err := item.Validate(); err != nil {
		return err
	}
	if _, ok := s.items[item.ID]; !ok {
		return store.ErrItemNotFound
	}
	copied := *item
	s.items[item.ID] = &copied
	return nil
}

func (s *fakeItemStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, ok := s.items[id]; !ok {
		return store.ErrItemNotFound
	}
	delete(s.items, id)
	return nil
}

func (s *fakeItemStore) WithTx(tx *sql.Tx) store.ItemStore { return s }

// seedItem inserts an item with a fixed creation time, bypassing the
// service, for filter tests.
func (s *fakeItemStore) seedItem(t *testing.T, name, description string, createdAt time.Time) *domain.Item {
	t.Helper()
	item := &domain.Item{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   createdAt,
	}
	s.items[item.ID] = item
	return item
}
