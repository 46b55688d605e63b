package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for items. All wrap ErrValidation so
// callers can match the category without naming each field.
var (
	ErrEmptyItemID          = fmt.Errorf("%w: item ID cannot be empty", ErrValidation)
	ErrEmptyItemName        = fmt.Errorf("%w: item name cannot be empty", ErrValidation)
	ErrEmptyItemDescription = fmt.Errorf("%w: item description cannot be empty", ErrValidation)
)

// Item is the managed business entity: a named, described record with
// an immutable creation timestamp.
type Item struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// NewItem creates a new Item with the given name and description.
// It generates the item ID and sets the creation timestamp.
func NewItem(name, description string) (*Item, error) {
	item := &Item{
		ID:          uuid.New(),
		Name:        name,
		Description: description,
		CreatedAt:   time.Now().UTC(),
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the Item has valid data.
func (i *Item) Validate() error {
	if i.ID == uuid.Nil {
		return ErrEmptyItemID
	}

	if i.Name == "" {
		return ErrEmptyItemName
	}

	if i.Description == "" {
		return ErrEmptyItemDescription
	}

	return nil
}

// Apply merges the supplied fields into the item. A field is
// overwritten only when its new value is non-empty; an empty string is
// indistinguishable from "not supplied" and leaves the prior value
// untouched. ID and CreatedAt are never modified.
func (i *Item) Apply(name, description string) {
	if name != "" {
		i.Name = name
	}
	if description != "" {
		i.Description = description
	}
}
