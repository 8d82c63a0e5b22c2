package handlers

import (
	"net/http"

	"github.com/rogerio-castellano/warehouse-inventory/internal/apperrors"
)

// GetDashboardMetricsHandler godoc
// @Summary Get dashboard metrics
// @Description Returns product, stock value, low-stock, category and movement totals
// @Tags metrics
// @Produce json
// @Success 200 {object} MetricsResponse
// @Failure 500 {object} apperrors.Error
// @Router /metrics/dashboard [get]
func GetDashboardMetricsHandler(w http.ResponseWriter, r *http.Request) {
	metrics, err := metricsRepo.GetDashboardMetrics(r.Context())
	if err != nil {
		writeError(w, r, apperrors.Internal("failed to compute metrics", err))
		return
	}
	respond(w, r, http.StatusOK, toMetricsResponse(metrics))
}
