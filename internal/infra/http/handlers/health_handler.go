package handlers

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	StatusHealthy       = "healthy"
	StatusNotConfigured = "not configured"
	SinkEnabled         = "enabled"
	SinkDisabled        = "disabled"
)

type HealthHandler struct {
	DB        *sql.DB
	Redis     *redis.Client
	Sinks     map[string]string
	StartTime time.Time
}

type HealthResponse struct {
	Status       string            `json:"status"`
	Version      string            `json:"version"`
	Uptime       string            `json:"uptime"`
	Dependencies map[string]string `json:"dependencies"`
	Sinks        map[string]string `json:"sinks"`
}

// NewHealthHandler takes the startup state of each sink ("enabled",
// "disabled" or the configuration problem that disabled it).
func NewHealthHandler(db *sql.DB, rdb *redis.Client, sinks map[string]string) *HealthHandler {
	return &HealthHandler{
		DB:        db,
		Redis:     rdb,
		Sinks:     sinks,
		StartTime: time.Now(),
	}
}

func (h *HealthHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	deps := make(map[string]string)

	if h.DB != nil {
		if err := h.DB.PingContext(ctx); err != nil {
			deps["database"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["database"] = StatusHealthy
		}
	} else {
		deps["database"] = StatusNotConfigured
	}

	if h.Redis != nil {
		if err := h.Redis.Ping(ctx).Err(); err != nil {
			deps["redis"] = fmt.Sprintf("unhealthy: %v", err)
		} else {
			deps["redis"] = StatusHealthy
		}
	} else {
		deps["redis"] = StatusNotConfigured
	}

	// Sinks are informational only.
	status := StatusHealthy
	for _, v := range deps {
		if v != StatusHealthy && v != StatusNotConfigured {
			status = "degraded"
			break
		}
	}

	sinks := h.Sinks
	if sinks == nil {
		sinks = map[string]string{}
	}

	response := HealthResponse{
		Status:       status,
		Version:      "1.0.0",
		Uptime:       time.Since(h.StartTime).Round(time.Second).String(),
		Dependencies: deps,
		Sinks:        sinks,
	}

	code := http.StatusOK
	if status == "degraded" {
		code = http.StatusServiceUnavailable
	}
	writeJSON(w, code, response)
}
