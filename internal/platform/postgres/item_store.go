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

// ItemStore implements the store.ItemStore interface using a
// PostgreSQL database as the storage backend.
type ItemStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewItemStore creates a new PostgreSQL implementation of the
// ItemStore interface. It accepts a database connection or transaction
// that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewItemStore(db store.DBTX, logger *slog.Logger) *ItemStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &ItemStore{
		db:     db,
		logger: logger.With(slog.String("component", "item_store")),
	}
}

// Ensure ItemStore implements store.ItemStore interface
var _ store.ItemStore = (*ItemStore)(nil)

// Create implements store.ItemStore.Create
// It saves a new item to the database, handling domain validation.
func (s *ItemStore) Create(ctx context.Context, item *domain.Item) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("item validation failed during create",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return err
	}

	query := `
		INSERT INTO items (id, name, description, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		item.ID,
		item.Name,
		item.Description,
		item.CreatedAt,
	)

	if err != nil {
		log.Error("failed to create item",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return err
	}

	log.Info("item created successfully",
		slog.String("item_id", item.ID.String()),
		slog.String("name", item.Name))
	return nil
}

// GetByID implements store.ItemStore.GetByID
// Returns store.ErrItemNotFound if the item does not exist.
func (s *ItemStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	log.Debug("retrieving item by ID", slog.String("item_id", id.String()))

	query := `
		SELECT id, name, description, created_at
		FROM items
		WHERE id = $1
	`

	var item domain.Item
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&item.ID,
		&item.Name,
		&item.Description,
		&item.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("item not found", slog.String("item_id", id.String()))
			return nil, store.ErrItemNotFound
		}
		log.Error("failed to get item by ID",
			slog.String("error", err.Error()),
			slog.String("item_id", id.String()))
		return nil, err
	}

	return &item, nil
}

// List implements store.ItemStore.List
// It retrieves all items whose created_at falls within the inclusive
// bounds of the filter; an unset bound leaves that side open. No ORDER
// BY is applied, so callers get the store's natural order.
func (s *ItemStore) List(ctx context.Context, filter store.ItemFilter) ([]*domain.Item, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, description, created_at
		FROM items
	`

	// Build the WHERE clause from whichever bounds were supplied.
	var conditions []string
	var args []any
	if filter.CreatedAfter != nil {
		args = append(args, *filter.CreatedAfter)
		conditions = append(conditions, fmt.Sprintf("created_at >= $%d", len(args)))
	}
	if filter.CreatedBefore != nil {
		args = append(args, *filter.CreatedBefore)
		conditions = append(conditions, fmt.Sprintf("created_at <= $%d", len(args)))
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query items",
			slog.String("error", err.Error()))
		return nil, err
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	var items []*domain.Item
	for rows.Next() {
		var item domain.Item
		if err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.Description,
			&item.CreatedAt,
		); err != nil {
			log.Error("failed to scan item row",
				slog.String("error", err.Error()))
			return nil, err
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows",
			slog.String("error", err.Error()))
		return nil, err
	}

	// Return empty slice instead of nil if no items found
	if items == nil {
		items = []*domain.Item{}
	}

	log.Debug("listed items", slog.Int("count", len(items)))
	return items, nil
}

// Update implements store.ItemStore.Update
// Returns store.ErrItemNotFound if the item does not exist.
func (s *ItemStore) Update(ctx context.Context, item *domain.Item) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("item validation failed during update",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return err
	}

	query := `
		UPDATE items
		SET name = $1, description = $2
		WHERE id = $3
	`

	result, err := s.db.ExecContext(
		ctx,
		query,
		item.Name,
		item.Description,
		item.ID,
	)

	if err != nil {
		log.Error("failed to update item",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("item_id", item.ID.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("item not found for update",
			slog.String("item_id", item.ID.String()))
		return store.ErrItemNotFound
	}

	log.Info("item updated successfully",
		slog.String("item_id", item.ID.String()))
	return nil
}

// Delete implements store.ItemStore.Delete
// Returns store.ErrItemNotFound if the item does not exist.
func (s *ItemStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		DELETE FROM items
		WHERE id = $1
	`

	result, err := s.db.ExecContext(ctx, query, id)
	if err != nil {
		log.Error("failed to delete item",
			slog.String("error", err.Error()),
			slog.String("item_id", id.String()))
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("item_id", id.String()))
		return err
	}

	if rowsAffected == 0 {
		log.Debug("item not found for delete",
			slog.String("item_id", id.String()))
		return store.ErrItemNotFound
	}

	log.Info("item deleted successfully",
		slog.String("item_id", id.String()))
	return nil
}

// WithTx implements store.ItemStore.WithTx
// It returns a new ItemStore that executes against the provided
// transaction instead of the base connection.
func (s *ItemStore) WithTx(tx *sql.Tx) store.ItemStore {
	return &ItemStore{
		db:     tx,
		logger: s.logger,
	}
}
