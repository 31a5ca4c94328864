package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/adamphillips/atlas/pkg/models"
	"github.com/adamphillips/atlas/pkg/services"
)

// NextActionsResponse for GET /api/next-actions
type NextActionsResponse struct {
	Items []*models.NextActionItem `json:"items"`
	Total int                      `json:"total"`
}

// OutcomeMetricsResponse for GET /api/metrics/outcomes
type OutcomeMetricsResponse struct {
	Counts []*models.OutcomeCount `json:"counts"`
}

// ReportsHandler handles the cross-contact report endpoints.
type ReportsHandler struct {
	reportService services.ReportService
	logger        *zap.Logger
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(reportService services.ReportService, logger *zap.Logger) *ReportsHandler {
	return &ReportsHandler{
		reportService: reportService,
		logger:        logger,
	}
}

// RegisterRoutes registers the report routes on the given mux.
func (h *ReportsHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/next-actions", h.NextActions)
	mux.HandleFunc("GET /api/metrics/outcomes", h.OutcomeMetrics)
}

// NextActions handles GET /api/next-actions
func (h *ReportsHandler) NextActions(w http.ResponseWriter, r *http.Request) {
	items, err := h.reportService.NextActions(r.Context())
	if err != nil {
		h.logger.Error("Failed to list next actions", zap.Error(err))
		writeServiceError(w, h.logger, err, "list_next_actions_failed")
		return
	}

	response := NextActionsResponse{
		Items: items,
		Total: len(items),
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: response}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}

// OutcomeMetrics handles GET /api/metrics/outcomes
func (h *ReportsHandler) OutcomeMetrics(w http.ResponseWriter, r *http.Request) {
	counts, err := h.reportService.OutcomeMetrics(r.Context())
	if err != nil {
		h.logger.Error("Failed to count outcomes", zap.Error(err))
		writeServiceError(w, h.logger, err, "outcome_metrics_failed")
		return
	}

	if err := WriteJSON(w, http.StatusOK, ApiResponse{Success: true, Data: OutcomeMetricsResponse{Counts: counts}}); err != nil {
		h.logger.Error("Failed to write response", zap.Error(err))
	}
}
