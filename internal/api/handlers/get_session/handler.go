package get_session

import (
	"net/http"

	"github.com/gorilla/mux"

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

// Handle GET /api/v1/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.service.Get(r.Context(), sessionID)
	if err != nil {
		handlers.RespondSessionError(w, h.logger, "GET /sessions/{id}", sessionID, err)
		return
	}

	h.logger.Info("GET /sessions/{id} - Session retrieved: session_id=%s, state=%s", sessionID, session.State)
	handlers.RespondJSON(w, http.StatusOK, session)
}
