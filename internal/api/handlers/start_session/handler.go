package start_session

import (
	"net/http"

	"github.com/m04kA/SMC-SpaBooking/internal/api/handlers"
)

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	session, err := h.service.Start(r.Context())
	if err != nil {
		handlers.RespondSessionError(w, h.logger, "POST /sessions", "", err)
		return
	}

	h.logger.Info("POST /sessions - Session started: session_id=%s", session.SessionID)
	handlers.RespondJSON(w, http.StatusCreated, session)
}
