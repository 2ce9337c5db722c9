package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/skintrack/skin-ledger-backend/internal/api/response"
	"github.com/skintrack/skin-ledger-backend/internal/apperrors"
	"github.com/skintrack/skin-ledger-backend/internal/model"
	"github.com/skintrack/skin-ledger-backend/internal/service"
)

// StatsHandler handles HTTP requests for portfolio statistics and the
// analytics time series.
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new StatsHandler with the provided service dependency.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{
		statsService: statsService,
	}
}

// SnapshotRecordedResponse reports whether a snapshot row was written.
type SnapshotRecordedResponse struct {
	Recorded bool `json:"recorded"`
}

// Stats handles GET requests for the current portfolio statistics, derived
// live from both ledgers and the counters.
//
// Endpoint: GET /api/stats
// Response: 200 OK with Statistics
func (h *StatsHandler) Stats(w http.ResponseWriter, _ *http.Request) {
	response.RespondJSON(w, http.StatusOK, h.statsService.Snapshot())
}

// Analytics handles GET requests for the analytics series grouped by
// calendar period.
//
// Endpoint: GET /api/analytics?period=week|month|year
// Response: 200 OK with array of PeriodSummary
// Error: 400 Bad Request if the period is unsupported
// Error: 500 Internal Server Error if retrieval fails
func (h *StatsHandler) Analytics(w http.ResponseWriter, r *http.Request) {
	period := model.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = model.PeriodWeek
	}

	summaries, err := h.statsService.GroupByPeriod(period)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidPeriod) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidPeriod.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAnalytics.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, summaries)
}

// RecordSnapshot handles POST requests to append an analytics snapshot now,
// outside the scheduled cadence. The row is skipped when nothing changed
// since the last snapshot.
//
// Endpoint: POST /api/analytics/snapshot?period=week|month|year
// Response: 200 OK with SnapshotRecordedResponse
// Error: 400 Bad Request if the period is unsupported
// Error: 500 Internal Server Error if the write fails
func (h *StatsHandler) RecordSnapshot(w http.ResponseWriter, r *http.Request) {
	period := model.Period(r.URL.Query().Get("period"))
	if period == "" {
		period = model.PeriodWeek
	}

	recorded, err := h.statsService.RecordSnapshot(time.Now().UTC(), period)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidPeriod) {
			response.RespondError(w, http.StatusBadRequest, apperrors.ErrInvalidPeriod.Error(), err.Error())
			return
		}
		response.RespondError(w, http.StatusInternalServerError, "failed to record snapshot", err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, SnapshotRecordedResponse{Recorded: recorded})
}
