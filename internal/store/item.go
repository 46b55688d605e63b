package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/mriley/stash-api/internal/domain"
)

// ItemFilter restricts a List call to items created within an inclusive
// time range. A nil bound leaves that side of the range open.
type ItemFilter struct {
	CreatedAfter  *time.Time // include items with created_at >= CreatedAfter
	CreatedBefore *time.Time // include items with created_at <= CreatedBefore
}

// ItemStore defines the interface for item data persistence.
type ItemStore interface {
	// Create saves a new item to the store.
	Create(ctx context.Context, item *domain.Item) error

	// GetByID retrieves an item by its unique ID.
	// Returns ErrItemNotFound if the item does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Item, error)

	// List retrieves all items matching the filter. Result order is the
	// store's natural order and is not deterministic.
	List(ctx context.Context, filter ItemFilter) ([]*domain.Item, error)

	// Update overwrites an existing item's name and description.
	// ID and CreatedAt are never modified.
	// Returns ErrItemNotFound if the item does not exist.
	Update(ctx context.Context, item *domain.Item) error

	// Delete removes an item from the store by its ID.
	// Returns ErrItemNotFound if the item does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a new ItemStore instance that uses the provided
	// transaction.
	WithTx(tx *sql.Tx) ItemStore
}
