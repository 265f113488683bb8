package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/otcheredev/clinic-pos/internal/database"
	"github.com/otcheredev/clinic-pos/internal/events"
)

type HealthHandler struct {
	publisher events.Publisher
}

func NewHealthHandler(publisher events.Publisher) *HealthHandler {
	return &HealthHandler{publisher: publisher}
}

type healthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Services  map[string]string `json:"services"`
}

// Health reports per-dependency status. A down broker degrades the
// report but never fails it: event delivery is best effort.
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	response := healthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Services:  make(map[string]string),
	}

	sqlDB, err := database.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		response.Services["database"] = "unhealthy"
		response.Status = "degraded"
	} else {
		response.Services["database"] = "healthy"
	}

	if h.publisher.Connected() {
		response.Services["broker"] = "healthy"
	} else {
		response.Services["broker"] = "disconnected"
	}

	w.Header().Set("Content-Type", "application/json")
	if response.Status != "healthy" {
		w.WriteHeader(http.StatusServiceUnavailable)
	}
	json.NewEncoder(w).Encode(response)
}

// Ready reports whether the service can take traffic. Only the database
// gates readiness.
func (h *HealthHandler) Ready(w http.ResponseWriter, r *http.Request) {
	sqlDB, err := database.DB.DB()
	if err != nil || sqlDB.Ping() != nil {
		http.Error(w, "Service not ready", http.StatusServiceUnavailable)
		return
	}

	w.WriteHeader(http.StatusOK)
	w.Write([]byte("OK"))
}
