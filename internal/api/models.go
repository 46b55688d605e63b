package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/mriley/stash-api/internal/domain"
)

// Common request/response structures

// SignupRequest defines the payload for the account registration endpoint.
type SignupRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AccountResponse defines the account representation returned by the API.
// The password hash is never part of it.
type AccountResponse struct {
	ID        uuid.UUID `json:"id"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}

// TokenResponse defines the successful response for the sign-in endpoint.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// CreateItemRequest defines the payload for the item creation endpoint.
// Both fields are required; empty strings are rejected.
type CreateItemRequest struct {
	Name        string `json:"name"        validate:"required"`
	Description string `json:"description" validate:"required"`
}

// UpdateItemRequest defines the payload for the item update endpoint.
// Both fields are optional; an omitted or empty field keeps the item's
// prior value.
type UpdateItemRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// ItemResponse defines the item representation returned by the API.
type ItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// accountToResponse converts a domain.Account to an AccountResponse.
func accountToResponse(account *domain.Account) AccountResponse {
	return AccountResponse{
		ID:        account.ID,
		Username:  account.Username,
		CreatedAt: account.CreatedAt,
	}
}

// itemToResponse converts a domain.Item to an ItemResponse.
func itemToResponse(item *domain.Item) ItemResponse {
	return ItemResponse{
		ID:          item.ID,
		Name:        item.Name,
		Description: item.Description,
		CreatedAt:   item.CreatedAt,
	}
}

// itemsToResponse converts a slice of domain.Item to ItemResponses.
func itemsToResponse(items []*domain.Item) []ItemResponse {
	responses := make([]ItemResponse, 0, len(items))
	for _, item := range items {
		responses = append(responses, itemToResponse(item))
	}
	return responses
}
