package api

import (
	"net/http"
	"time"

	"task-list/config"
	"task-list/logger"
	"task-list/tasks/service"
)

var startTime = time.Now()

// HealthResponse provides detailed health information
type HealthResponse struct {
	Status       string `json:"status"`
	Timestamp    string `json:"timestamp"`
	Uptime       string `json:"uptime"`
	Version      string `json:"version,omitempty"`
	StoreBackend string `json:"store_backend"`
	TaskCount    int    `json:"task_count"`
}

// NewHealthHandler returns a health check handler. A store that cannot
// answer makes the service unhealthy.
func NewHealthHandler(cfg *config.Config, svc service.Service, lg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := svc.Count(r.Context())
		if err != nil {
			respondWithServiceError(w, err, lg)
			return
		}

		response := HealthResponse{
			Status:       "healthy",
			Timestamp:    time.Now().UTC().Format(time.RFC3339),
			Uptime:       time.Since(startTime).String(),
			Version:      cfg.Version,
			StoreBackend: cfg.StoreBackend,
			TaskCount:    count,
		}

		respondWithJSON(w, http.StatusOK, response, lg)
	}
}
