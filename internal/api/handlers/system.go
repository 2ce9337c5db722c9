package handlers

import (
	"net/http"

	"github.com/skintrack/skin-ledger-backend/internal/api/request"
	"github.com/skintrack/skin-ledger-backend/internal/api/response"
	"github.com/skintrack/skin-ledger-backend/internal/service"
)

// SystemHandler handles system-related HTTP requests
type SystemHandler struct {
	systemService *service.SystemService
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(systemService *service.SystemService) *SystemHandler {
	return &SystemHandler{
		systemService: systemService,
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
	Error    string `json:"error,omitempty"`
}

// VersionResponse represents the version check response
type VersionResponse struct {
	AppVersion string `json:"app_version"`
}

// MarketTokenStatusResponse reports whether a market data token is stored.
type MarketTokenStatusResponse struct {
	Configured bool `json:"configured"`
}

// Health checks the health of the system and database connectivity
func (h *SystemHandler) Health(w http.ResponseWriter, _ *http.Request) {
	// Check database health
	if err := h.systemService.CheckHealth(); err != nil {
		response := HealthResponse{
			Status:   "unhealthy",
			Database: "disconnected",
			Error:    err.Error(),
		}
		respondJSON(w, http.StatusServiceUnavailable, response)
		return
	}

	// System is healthy
	response := HealthResponse{
		Status:   "healthy",
		Database: "connected",
	}
	respondJSON(w, http.StatusOK, response)
}

// Version handles GET requests to retrieve the application version.
//
// Endpoint: GET /api/system/version
// Response: 200 OK with VersionResponse
func (h *SystemHandler) Version(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, VersionResponse{AppVersion: h.systemService.Version()})
}

// SetMarketToken handles PUT requests to store the market data API token.
// The token is encrypted before it reaches the settings table.
//
// Endpoint: PUT /api/system/market-token
// Request Body: MarketTokenRequest
// Response: 204 No Content
// Error: 400 Bad Request if the body is invalid or the token is empty
// Error: 500 Internal Server Error if encryption or storage fails
func (h *SystemHandler) SetMarketToken(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.MarketTokenRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}
	if req.Token == "" {
		response.RespondError(w, http.StatusBadRequest, "validation failed", "token must not be empty")
		return
	}

	if err := h.systemService.SetMarketToken(req.Token); err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to store market token", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}

// MarketTokenStatus handles GET requests asking whether a market data token
// is stored. The token itself is never returned over HTTP.
//
// Endpoint: GET /api/system/market-token
// Response: 200 OK with MarketTokenStatusResponse
// Error: 500 Internal Server Error if the settings read fails
func (h *SystemHandler) MarketTokenStatus(w http.ResponseWriter, _ *http.Request) {
	_, configured, err := h.systemService.MarketToken()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to read market token status", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, MarketTokenStatusResponse{Configured: configured})
}
