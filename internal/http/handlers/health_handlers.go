package handlers

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// HealthCheck probes one backing dependency, such as the database or Redis.
type HealthCheck struct {
	Name  string
	Probe func(ctx context.Context) error
}

const healthTimeout = 2 * time.Second

// HealthHandler godoc
// @Summary Service health
// @Description Reports the status of the service and each of its backing dependencies
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
	defer cancel()

	resp := HealthResponse{Status: "ok", Checks: map[string]string{}}
	status := http.StatusOK
	for _, check := range healthChecks {
		if err := check.Probe(ctx); err != nil {
			logger.Warn("health check failed", zap.String("check", check.Name), zap.Error(err))
			resp.Checks[check.Name] = err.Error()
			resp.Status = "degraded"
			status = http.StatusServiceUnavailable
			continue
		}
		resp.Checks[check.Name] = "ok"
	}

	respond(w, r, status, resp)
}
