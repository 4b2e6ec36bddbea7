package update_draft

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBooking/internal/service/sessions/models"
)

const (
	msgInvalidRequest = "некорректное тело запроса"
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

// Handle PUT /api/v1/sessions/{sessionId}/draft
// Меняет только переданные поля; проверка значений выполняется при переходе на следующий шаг
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	// Парсим тело запроса
	var req models.UpdateDraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sessions/{id}/draft - Invalid request body: session_id=%s, error=%v", sessionID, err)
		handlers.RespondBadRequest(w, msgInvalidRequest)
		return
	}

	session, err := h.service.UpdateDraft(r.Context(), sessionID, &req)
	if err != nil {
		handlers.RespondSessionError(w, h.logger, "PUT /sessions/{id}/draft", sessionID, err)
		return
	}

	h.logger.Info("PUT /sessions/{id}/draft - Draft updated: session_id=%s, state=%s", sessionID, session.State)
	handlers.RespondJSON(w, http.StatusOK, session)
}
