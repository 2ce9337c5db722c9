package handlers

import (
	"errors"
	"net/http"

	"github.com/skintrack/skin-ledger-backend/internal/api/request"
	"github.com/skintrack/skin-ledger-backend/internal/api/response"
	"github.com/skintrack/skin-ledger-backend/internal/apperrors"
	"github.com/skintrack/skin-ledger-backend/internal/service"
)

// FinanceHandler handles HTTP requests for the ledger's money counters:
// invested capital, fees and the remaining balance.
type FinanceHandler struct {
	financeService *service.FinanceService
}

// NewFinanceHandler creates a new FinanceHandler with the provided service dependency.
func NewFinanceHandler(financeService *service.FinanceService) *FinanceHandler {
	return &FinanceHandler{
		financeService: financeService,
	}
}

// Counters handles GET requests for the current counter values.
//
// Endpoint: GET /api/finance
// Response: 200 OK with Counters
func (h *FinanceHandler) Counters(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.financeService.Counters())
}

// AdjustInvestment handles POST requests to add or withdraw invested
// capital. A positive delta raises both the total investment and the
// remaining balance; a negative delta lowers both.
//
// Endpoint: POST /api/finance/investment
// Request Body: AdjustInvestmentRequest
// Response: 200 OK with the updated Counters
// Error: 400 Bad Request if the request body is invalid
// Error: 500 Internal Server Error if persistence fails
func (h *FinanceHandler) AdjustInvestment(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AdjustInvestmentRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	counters, err := h.financeService.AdjustInvestment(r.Context(), req.Delta)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, "failed to adjust investment", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, counters)
}

// AddFee handles POST requests to record a platform or trading fee. The fee
// total grows and the remaining balance shrinks by the same amount.
//
// Endpoint: POST /api/finance/fee
// Request Body: AddFeeRequest
// Response: 200 OK with the updated Counters
// Error: 400 Bad Request if the amount is negative or the body is invalid
// Error: 500 Internal Server Error if persistence fails
func (h *FinanceHandler) AddFee(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.AddFeeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	counters, err := h.financeService.AddFee(r.Context(), req.Amount)
	if err != nil {
		if errors.Is(err, apperrors.ErrPersistence) {
			response.RespondError(w, http.StatusInternalServerError, "failed to add fee", err.Error())
			return
		}
		response.RespondError(w, http.StatusBadRequest, "validation failed", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, counters)
}
