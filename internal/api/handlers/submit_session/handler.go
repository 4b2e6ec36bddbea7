package submit_session

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

// Handle POST /api/v1/sessions/{sessionId}/submit
// При успехе возвращает сессию в состоянии Confirmation с созданным бронированием
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	session, err := h.service.Submit(r.Context(), sessionID)
	if err != nil {
		handlers.RespondSessionError(w, h.logger, "POST /sessions/{id}/submit", sessionID, err)
		return
	}

	bookingID := ""
	if session.Booking != nil {
		bookingID = session.Booking.ID
	}
	h.logger.Info("POST /sessions/{id}/submit - Booking confirmed: session_id=%s, booking_id=%s", sessionID, bookingID)
	handlers.RespondJSON(w, http.StatusCreated, session)
}
