package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/skintrack/skin-ledger-backend/internal/api/request"
	"github.com/skintrack/skin-ledger-backend/internal/api/response"
	"github.com/skintrack/skin-ledger-backend/internal/apperrors"
	"github.com/skintrack/skin-ledger-backend/internal/model"
	"github.com/skintrack/skin-ledger-backend/internal/service"
	"github.com/skintrack/skin-ledger-backend/internal/validation"
)

// ItemHandler handles HTTP requests for the inventory lifecycle: adding
// purchases, querying the active and sold ledgers, and selling.
type ItemHandler struct {
	inventoryService *service.InventoryService
	queryService     *service.QueryService
	catalogService   *service.CatalogService
}

// NewItemHandler creates a new ItemHandler with the provided service dependencies.
func NewItemHandler(inventoryService *service.InventoryService, queryService *service.QueryService, catalogService *service.CatalogService) *ItemHandler {
	return &ItemHandler{
		inventoryService: inventoryService,
		queryService:     queryService,
		catalogService:   catalogService,
	}
}

// ItemDetailResponse is a single inventory item plus its rendered cooldown
// countdown or hold duration.
type ItemDetailResponse struct {
	model.InventoryItem
	TimeInfo string `json:"timeInfo,omitempty"`
}

// CanSellResponse reports whether an item may be sold and why not otherwise.
type CanSellResponse struct {
	Sellable bool   `json:"sellable"`
	Reason   string `json:"reason"`
}

// RefreshCoolingResponse reports how many items left their cooldown.
type RefreshCoolingResponse struct {
	Transitioned int `json:"transitioned"`
}

// CreateItem handles POST requests to add a purchased skin to the inventory.
// The new item starts in the cooling state and the remaining balance drops
// by the purchase price.
//
// Endpoint: POST /api/item
// Request Body: CreateItemRequest
// Response: 201 Created with the new InventoryItem
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 409 Conflict if an item with the same purchase time and wear exists
// Error: 500 Internal Server Error if persistence fails
func (h *ItemHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CreateItemRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	item, err := h.inventoryService.AddItem(r.Context(), req)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicateItem) {
			response.RespondError(w, http.StatusConflict, apperrors.ErrDuplicateItem.Error(), err.Error())
			return
		}
		if errors.Is(err, apperrors.ErrPersistence) {
			response.RespondError(w, http.StatusInternalServerError, "failed to create item", err.Error())
			return
		}
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	// Keep the price catalog in sync with what the inventory has seen.
	// A catalog failure does not fail the purchase.
	if _, err := h.catalogService.EnsureMapping(item.Name, item.Category, item.WearTier, item.StatTrak, time.Now().UTC()); err != nil {
		log.Printf("Failed to update item mapping for %s: %v", item.ID, err)
	}

	response.RespondJSON(w, http.StatusCreated, item)
}

// Items handles GET requests to list the active inventory.
// Supports filtering via query parameters: name (substring, case-insensitive),
// category, subcategory, wearTier, state, priceMin, priceMax, and sort
// (asc or desc for purchase time within each state group).
//
// Endpoint: GET /api/item
// Response: 200 OK with array of InventoryItem
// Error: 400 Bad Request if a filter parameter does not parse
func (h *ItemHandler) Items(w http.ResponseWriter, r *http.Request) {
	filter, err := parseInventoryFilter(r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid filter", err.Error())
		return
	}

	items := h.queryService.ListInventory(filter)
	response.RespondJSON(w, http.StatusOK, items)
}

// SoldItems handles GET requests to list the sold archive.
//
// Endpoint: GET /api/item/archive
// Response: 200 OK with array of SoldItem
func (h *ItemHandler) SoldItems(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.queryService.ListSold())
}

// GetItem handles GET requests for a single active item, including its
// countdown or hold duration.
//
// Endpoint: GET /api/item/{id}
// Response: 200 OK with ItemDetailResponse
// Error: 400 Bad Request if the item ID is malformed (validated by middleware)
// Error: 404 Not Found if the item is not in the active inventory
func (h *ItemHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")

	item, err := h.inventoryService.GetItem(itemID)
	if err != nil {
		response.RespondError(w, http.StatusNotFound, apperrors.ErrItemNotFound.Error(), err.Error())
		return
	}

	timeInfo, err := h.inventoryService.TimeInfo(itemID, time.Now().UTC())
	if err != nil {
		response.RespondError(w, http.StatusNotFound, apperrors.ErrItemNotFound.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, ItemDetailResponse{InventoryItem: item, TimeInfo: timeInfo})
}

// CanSell handles GET requests asking whether an item may be sold right now.
// Always returns 200; the answer is in the body.
//
// Endpoint: GET /api/item/{id}/can-sell
// Response: 200 OK with CanSellResponse
func (h *ItemHandler) CanSell(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")

	sellable, reason := h.inventoryService.CanSell(itemID)
	response.RespondJSON(w, http.StatusOK, CanSellResponse{Sellable: sellable, Reason: reason})
}

// SellItem handles POST requests to sell a holding item. The item moves to
// the sold archive and the balance and profit counters update in the same
// commit.
//
// Endpoint: POST /api/item/{id}/sell
// Request Body: SellItemRequest (sellPrice, extraIncome, optional sellTime)
// Response: 200 OK with the SoldItem record
// Error: 400 Bad Request if validation fails or request body is invalid
// Error: 404 Not Found if the item is not in the active inventory
// Error: 409 Conflict if the item is not in the holding state
// Error: 500 Internal Server Error if persistence fails
func (h *ItemHandler) SellItem(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")

	req, err := parseJSON[request.SellItemRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	sellTime := time.Now().UTC()
	if req.SellTime != "" {
		sellTime, err = validation.ParseTime(req.SellTime)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
			return
		}
	}

	sold, err := h.inventoryService.SellItem(r.Context(), itemID, req.SellPrice, req.ExtraIncome, sellTime)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrItemNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrItemNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrInvalidItemState):
			response.RespondError(w, http.StatusConflict, apperrors.ErrInvalidItemState.Error(), err.Error())
		case errors.Is(err, apperrors.ErrPersistence):
			response.RespondError(w, http.StatusInternalServerError, "failed to sell item", err.Error())
		default:
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, sold)
}

// UpdatePrice handles PUT requests to set an item's current market price.
//
// Endpoint: PUT /api/item/{id}/price
// Request Body: UpdatePriceRequest
// Response: 200 OK
// Error: 400 Bad Request if the price is negative or the body is invalid
// Error: 404 Not Found if the item is not in the active inventory
// Error: 500 Internal Server Error if persistence fails
func (h *ItemHandler) UpdatePrice(w http.ResponseWriter, r *http.Request) {
	itemID := chi.URLParam(r, "id")

	req, err := parseJSON[request.UpdatePriceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := h.inventoryService.UpdateCurrentPrice(r.Context(), itemID, req.Price); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrItemNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrItemNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrPersistence):
			response.RespondError(w, http.StatusInternalServerError, "failed to update price", err.Error())
		default:
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, map[string]string{"status": "updated"})
}

// RefreshCooling handles POST requests to re-evaluate every cooling item
// against the current time. The scheduler runs the same operation
// periodically; this endpoint exists for manual refreshes.
//
// Endpoint: POST /api/maintenance/refresh-cooling
// Response: 200 OK with RefreshCoolingResponse
// Error: 500 Internal Server Error if persistence fails
func (h *ItemHandler) RefreshCooling(w http.ResponseWriter, r *http.Request) {
	transitioned, err := h.inventoryService.RefreshCoolingStates(r.Context(), time.Now().UTC())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to refresh cooling states", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, RefreshCoolingResponse{Transitioned: transitioned})
}

// parseInventoryFilter builds an InventoryFilter from list query parameters.
func parseInventoryFilter(r *http.Request) (service.InventoryFilter, error) {
	q := r.URL.Query()

	filter := service.InventoryFilter{
		NameContains: q.Get("name"),
		Category:     q.Get("category"),
		Subcategory:  q.Get("subcategory"),
		WearTier:     q.Get("wearTier"),
	}

	if raw := q.Get("state"); raw != "" {
		state, ok := model.ParseItemState(raw)
		if !ok {
			return filter, errors.New("unknown state: " + raw)
		}
		filter.State = &state
	}

	if raw := q.Get("priceMin"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, errors.New("priceMin must be a number")
		}
		filter.PriceMin = v
	}
	if raw := q.Get("priceMax"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return filter, errors.New("priceMax must be a number")
		}
		filter.PriceMax = v
	}

	switch q.Get("sort") {
	case "", "asc":
		filter.SortDir = service.SortAscending
	case "desc":
		filter.SortDir = service.SortDescending
	default:
		return filter, errors.New("sort must be asc or desc")
	}

	return filter, nil
}
