package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mriley/stash-api/internal/domain"
	"github.com/mriley/stash-api/internal/store"
)

// ItemService provides CRUD operations over items.
type ItemService interface {
	// CreateItem persists a new item with the given name and description.
	CreateItem(ctx context.Context, name, description string) (*domain.Item, error)

	// GetItem retrieves an item by its ID.
	// Returns store.ErrItemNotFound if the item does not exist.
	GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error)

	// ListItems retrieves all items matching the filter.
	ListItems(ctx context.Context, filter store.ItemFilter) ([]*domain.Item, error)

	// UpdateItem merges the supplied fields into an existing item.
	// A field is overwritten only when non-empty; omitted or empty
	// fields keep their prior values.
	// Returns store.ErrItemNotFound if the item does not exist.
	UpdateItem(ctx context.Context, id uuid.UUID, name, description string) (*domain.Item, error)

	// DeleteItem removes an item by its ID.
	// Returns store.ErrItemNotFound if the item does not exist.
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

// ItemServiceImpl implements the ItemService interface.
type ItemServiceImpl struct {
	itemStore store.ItemStore
	db        *sql.DB
	logger    *slog.Logger
}

// NewItemService creates a new ItemService.
func NewItemService(itemStore store.ItemStore, db *sql.DB, logger *slog.Logger) ItemService {
	return &ItemServiceImpl{
		itemStore: itemStore,
		db:        db,
		logger:    logger.With("component", "item_service"),
	}
}

// CreateItem persists a new item.
// Uses a transaction to ensure atomicity of the operation.
func (s *ItemServiceImpl) CreateItem(
	ctx context.Context,
	name, description string,
) (*domain.Item, error) {
	item, err := domain.NewItem(name, description)
	if err != nil {
		s.logger.Warn("failed to create item object",
			"error", err,
			"name", name)
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.itemStore.WithTx(tx)
		return txStore.Create(ctx, item)
	})

	if err != nil {
		s.logger.Error("failed to save item",
			"error", err,
			"item_id", item.ID)
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.logger.Info("item created successfully",
		"item_id", item.ID,
		"name", item.Name)

	return item, nil
}

// GetItem retrieves an item by its ID.
func (s *ItemServiceImpl) GetItem(ctx context.Context, id uuid.UUID) (*domain.Item, error) {
	var item *domain.Item

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.itemStore.WithTx(tx)

		found, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}
		item = found
		return nil
	})

	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			s.logger.Debug("item not found",
				"item_id", id)
		} else {
			s.logger.Error("failed to retrieve item",
				"error", err,
				"item_id", id)
		}
		return nil, fmt.Errorf("failed to retrieve item: %w", err)
	}

	return item, nil
}

// ListItems retrieves all items matching the filter. The result is a
// finite slice; a fresh call re-queries the store.
func (s *ItemServiceImpl) ListItems(
	ctx context.Context,
	filter store.ItemFilter,
) ([]*domain.Item, error) {
	var items []*domain.Item

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.itemStore.WithTx(tx)

		found, err := txStore.List(ctx, filter)
		if err != nil {
			return err
		}
		items = found
		return nil
	})

	if err != nil {
		s.logger.Error("failed to list items",
			"error", err)
		return nil, fmt.Errorf("failed to list items: %w", err)
	}

	return items, nil
}

// UpdateItem merges the supplied fields into an existing item.
// Following the pattern of retrieving the full item first, applying the
// merge, and writing the complete item back, all within one transaction.
func (s *ItemServiceImpl) UpdateItem(
	ctx context.Context,
	id uuid.UUID,
	name, description string,
) (*domain.Item, error) {
	var item *domain.Item

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.itemStore.WithTx(tx)

		found, err := txStore.GetByID(ctx, id)
		if err != nil {
			return err
		}

		// Only non-empty fields are applied; an empty string reads as
		// "not supplied" and leaves the prior value in place.
		found.Apply(name, description)

		if err := txStore.Update(ctx, found); err != nil {
			return err
		}

		item = found
		return nil
	})

	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			s.logger.Debug("item not found for update",
				"item_id", id)
		} else {
			s.logger.Error("failed to update item",
				"error", err,
				"item_id", id)
		}
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	s.logger.Info("item updated successfully",
		"item_id", id)

	return item, nil
}

// DeleteItem removes an item by its ID.
// Uses a transaction to ensure atomicity of the operation.
func (s *ItemServiceImpl) DeleteItem(ctx context.Context, id uuid.UUID) error {
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.itemStore.WithTx(tx)
		return txStore.Delete(ctx, id)
	})

	if err != nil {
		if errors.Is(err, store.ErrItemNotFound) {
			s.logger.Debug("attempted to delete non-existent item",
				"item_id", id)
		} else {
			s.logger.Error("failed to delete item",
				"error", err,
				"item_id", id)
		}
		return fmt.Errorf("failed to delete item: %w", err)
	}

	s.logger.Info("item deleted successfully",
		"item_id", id)

	return nil
}
