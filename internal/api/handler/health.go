package handler

import (
	"context"
	"net/http"

	"github.com/savageaim/backend/internal/api/middleware"
	"github.com/savageaim/backend/internal/api/response"
)

// Pinger reports connectivity to a backing service.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler handles the GET /health endpoint.
type HealthHandler struct {
	db      Pinger
	queue   Pinger
	version string
}

// NewHealthHandler creates a new HealthHandler. Either pinger may be nil,
// in which case that component reports disconnected.
func NewHealthHandler(db, queue Pinger, version string) *HealthHandler {
	return &HealthHandler{
		db:      db,
		queue:   queue,
		version: version,
	}
}

type healthData struct {
	Status   string `json:"status"`
	Version  string `json:"version"`
	Database bool   `json:"database"`
	Queue    bool   `json:"queue"`
}

// ServeHTTP handles the health check request.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())

	dbOK := h.db != nil && h.db.Ping(r.Context()) == nil
	queueOK := h.queue != nil && h.queue.Ping(r.Context()) == nil

	status := "healthy"
	if !dbOK || !queueOK {
		status = "degraded"
	}

	data := healthData{
		Status:   status,
		Version:  h.version,
		Database: dbOK,
		Queue:    queueOK,
	}

	response.Success(w, http.StatusOK, data, requestID)
}
