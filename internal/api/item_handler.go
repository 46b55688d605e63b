package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/mriley/stash-api/internal/api/shared"
	"github.com/mriley/stash-api/internal/platform/logger"
	"github.com/mriley/stash-api/internal/redact"
	"github.com/mriley/stash-api/internal/service"
	"github.com/mriley/stash-api/internal/store"
)

// ItemHandler handles item-related HTTP requests.
type ItemHandler struct {
	itemService service.ItemService
	logger      *slog.Logger
}

// NewItemHandler creates a new ItemHandler.
func NewItemHandler(itemService service.ItemService, logger *slog.Logger) *ItemHandler {
	if logger == nil {
		panic("logger cannot be nil for ItemHandler")
	}

	return &ItemHandler{
		itemService: itemService,
		logger:      logger.With(slog.String("component", "item_handler")),
	}
}

// getPathItemID extracts and parses the item ID from the URL path.
// It writes a 400 response and returns false when the ID is missing or
// malformed.
func (h *ItemHandler) getPathItemID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	pathID := chi.URLParam(r, "id")
	if pathID == "" {
		log.Warn("item ID not found in URL path")
		shared.RespondWithError(w, r, http.StatusBadRequest, "Item ID is required")
		return uuid.Nil, false
	}

	id, err := uuid.Parse(pathID)
	if err != nil {
		log.Warn("invalid item ID format", slog.String("item_id", pathID))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid item ID format")
		return uuid.Nil, false
	}

	return id, true
}

// CreateItem handles POST /items requests.
// Both name and description are required; empty values are rejected.
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	if err := shared.Validate.Struct(req); err != nil {
		log.Warn("validation error", slog.String("error", redact.Error(err)))
		shared.RespondWithErrorAndLog(w, r, http.StatusBadRequest, SanitizeValidationError(err), err)
		return
	}

	item, err := h.itemService.CreateItem(r.Context(), req.Name, req.Description)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to create item"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("item created", slog.String("item_id", item.ID.String()))
	shared.RespondWithJSON(w, r, http.StatusCreated, itemToResponse(item))
}

// GetItem handles GET /items/{id} requests.
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	id, ok := h.getPathItemID(w, r)
	if !ok {
		return
	}

	item, err := h.itemService.GetItem(r.Context(), id)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to retrieve item"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// ListItems handles GET /items requests.
// The created_after and created_before query parameters are optional,
// independent, inclusive RFC 3339 bounds on created_at.
func (h *ItemHandler) ListItems(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var filter store.ItemFilter

	if raw := r.URL.Query().Get("created_after"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			log.Warn("invalid created_after timestamp", slog.String("value", raw))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid created_after timestamp")
			return
		}
		filter.CreatedAfter = &t
	}

	if raw := r.URL.Query().Get("created_before"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			log.Warn("invalid created_before timestamp", slog.String("value", raw))
			shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid created_before timestamp")
			return
		}
		filter.CreatedBefore = &t
	}

	items, err := h.itemService.ListItems(r.Context(), filter)
	if err != nil {
		shared.RespondWithErrorAndLog(
			w, r,
			http.StatusInternalServerError,
			"Failed to list items",
			err,
		)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, itemsToResponse(items))
}

// UpdateItem handles PUT /items/{id} requests.
// Despite the PUT verb this is a partial update: only supplied,
// non-empty fields overwrite the stored values. An explicit empty
// string is indistinguishable from an omitted field and is not applied.
func (h *ItemHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.getPathItemID(w, r)
	if !ok {
		return
	}

	var req UpdateItemRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		log.Warn("invalid request format", slog.String("error", redact.Error(err)))
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	item, err := h.itemService.UpdateItem(r.Context(), id, req.Name, req.Description)
	if err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to update item"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("item updated", slog.String("item_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, itemToResponse(item))
}

// DeleteItem handles DELETE /items/{id} requests.
func (h *ItemHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, ok := h.getPathItemID(w, r)
	if !ok {
		return
	}

	if err := h.itemService.DeleteItem(r.Context(), id); err != nil {
		statusCode := MapErrorToStatusCode(err)
		safeMessage := GetSafeErrorMessage(err)
		if statusCode == http.StatusInternalServerError {
			safeMessage = "Failed to delete item"
		}
		shared.RespondWithErrorAndLog(w, r, statusCode, safeMessage, err)
		return
	}

	log.Debug("item deleted", slog.String("item_id", id.String()))
	shared.RespondWithJSON(w, r, http.StatusOK, shared.MessageResponse{
		Message: "Item deleted successfully",
	})
}
