package health

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/m04kA/SMC-SpaBooking/internal/api/handlers"
)

const (
	statusOK       = "ok"
	statusDegraded = "degraded"
	statusFailed   = "unavailable"

	checkTimeout = 2 * time.Second
)

// Response HTTP response model
type Response struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

type Handler struct {
	checks map[string]Pinger
	logger Logger
}

// NewHandler создает обработчик проверки зависимостей; ключ - имя зависимости в ответе
func NewHandler(checks map[string]Pinger, logger Logger) *Handler {
	return &Handler{
		checks: checks,
		logger: logger,
	}
}

// Handle GET /api/v1/health
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), checkTimeout)
	defer cancel()

	names := make([]string, 0, len(h.checks))
	for name := range h.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := Response{
		Status: statusOK,
		Checks: make(map[string]string, len(names)),
	}
	for _, name := range names {
		if err := h.checks[name].Ping(ctx); err != nil {
			h.logger.Error("GET /health - %s is unavailable: %v", name, err)
			resp.Status = statusDegraded
			resp.Checks[name] = statusFailed
			continue
		}
		resp.Checks[name] = statusOK
	}

	if resp.Status != statusOK {
		handlers.RespondJSON(w, http.StatusServiceUnavailable, resp)
		return
	}
	handlers.RespondJSON(w, http.StatusOK, resp)
}
