package navigate_session

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaBooking/internal/api/handlers"
	"github.com/m04kA/SMC-SpaBooking/internal/service/sessions/models"
)

// Action переход между шагами мастера
type Action string

const (
	ActionAdvance Action = "advance"
	ActionRetreat Action = "retreat"
	ActionReset   Action = "reset"
)

type Handler struct {
	service SessionService
	action  Action
	route   string
	logger  Logger
}

// NewHandler создает обработчик для одного перехода; неизвестное действие - ошибка конфигурации роутера
func NewHandler(service SessionService, action Action, logger Logger) (*Handler, error) {
	switch action {
	case ActionAdvance, ActionRetreat, ActionReset:
	default:
		return nil, fmt.Errorf("navigate_session: unknown action %q", action)
	}

	return &Handler{
		service: service,
		action:  action,
		route:   fmt.Sprintf("POST /sessions/{id}/%s", action),
		logger:  logger,
	}, nil
}

// Handle POST /api/v1/sessions/{sessionId}/{advance|retreat|reset}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.do(r.Context(), sessionID)
	if err != nil {
		handlers.RespondSessionError(w, h.logger, h.route, sessionID, err)
		return
	}

	h.logger.Info("%s - Done: session_id=%s, state=%s", h.route, sessionID, session.State)
	handlers.RespondJSON(w, http.StatusOK, session)
}

func (h *Handler) do(ctx context.Context, sessionID string) (*models.SessionResponse, error) {
	switch h.action {
	case ActionRetreat:
		return h.service.Retreat(ctx, sessionID)
	case ActionReset:
		return h.service.Reset(ctx, sessionID)
	default:
		return h.service.Advance(ctx, sessionID)
	}
}
