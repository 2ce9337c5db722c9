package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/skintrack/skin-ledger-backend/internal/api/request"
	"github.com/skintrack/skin-ledger-backend/internal/api/response"
	"github.com/skintrack/skin-ledger-backend/internal/apperrors"
	"github.com/skintrack/skin-ledger-backend/internal/service"
)

// CatalogHandler handles HTTP requests for the price catalog: the reference
// prices remembered per (name, category, wear tier, stattrak) combination.
type CatalogHandler struct {
	catalogService *service.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler with the provided service dependency.
func NewCatalogHandler(catalogService *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// MappingPriceUpdatedResponse reports how many active items picked up the
// new reference price.
type MappingPriceUpdatedResponse struct {
	ItemsUpdated int `json:"itemsUpdated"`
}

// GetMapping handles GET requests for a single catalog entry.
//
// Endpoint: GET /api/catalog/{mappingId}
// Response: 200 OK with ItemMapping
// Error: 400 Bad Request if the mapping id is not numeric
// Error: 404 Not Found if the mapping does not exist
func (h *CatalogHandler) GetMapping(w http.ResponseWriter, r *http.Request) {
	mappingID, err := strconv.ParseInt(chi.URLParam(r, "mappingId"), 10, 64)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid mapping ID", err.Error())
		return
	}

	mapping, err := h.catalogService.GetMapping(mappingID)
	if err != nil {
		response.RespondError(w, http.StatusNotFound, apperrors.ErrMappingNotFound.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, mapping)
}

// UpdateMappingPrice handles PUT requests to set a catalog entry's reference
// price. The price fans out to every matching active inventory item.
//
// Endpoint: PUT /api/catalog/{mappingId}/price
// Request Body: UpdateMappingPriceRequest
// Response: 200 OK with MappingPriceUpdatedResponse
// Error: 400 Bad Request if the price is negative or the body is invalid
// Error: 404 Not Found if the mapping does not exist
// Error: 500 Internal Server Error if persistence fails
func (h *CatalogHandler) UpdateMappingPrice(w http.ResponseWriter, r *http.Request) {
	mappingID, err := strconv.ParseInt(chi.URLParam(r, "mappingId"), 10, 64)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid mapping ID", err.Error())
		return
	}

	req, err := parseJSON[request.UpdateMappingPriceRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	updated, err := h.catalogService.UpdatePrice(r.Context(), mappingID, req.Price)
	if err != nil {
		switch {
		case errors.Is(err, apperrors.ErrMappingNotFound):
			response.RespondError(w, http.StatusNotFound, apperrors.ErrMappingNotFound.Error(), err.Error())
		case errors.Is(err, apperrors.ErrPersistence):
			response.RespondError(w, http.StatusInternalServerError, "failed to update mapping price", err.Error())
		default:
			response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		}
		return
	}

	response.RespondJSON(w, http.StatusOK, MappingPriceUpdatedResponse{ItemsUpdated: updated})
}
