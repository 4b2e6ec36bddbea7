package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-SpaBooking/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-SpaBooking/internal/usecase/get_available_slots"
)

const (
	msgMissingDate          = "дата обязательна"
	msgInvalidDate          = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgDateInPast           = "дата не может быть в прошлом"
	msgInvalidInput         = "некорректные параметры запроса"
	msgTherapistNotFound    = "массажист не найден"
	msgTherapistUnavailable = "массажист сейчас не принимает записи"
	msgServiceNotFound      = "услуга не найдена"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/therapists/{therapistId}/available-slots
// Query params: date (required, YYYY-MM-DD), serviceId (optional)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем therapistId из URL
	therapistID := mux.Vars(r)["therapistId"]
	query := r.URL.Query()

	// Извлекаем date из query параметров
	dateStr := query.Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /therapists/{id}/available-slots - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}

	// Формируем запрос к use case (с парсингом даты)
	useCaseReq, err := ToUseCaseRequest(therapistID, query.Get("serviceId"), dateStr)
	if err != nil {
		h.logger.Warn("GET /therapists/{id}/available-slots - Invalid date format: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /therapists/{id}/available-slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /therapists/{id}/available-slots - Invalid date: therapist_id=%s, date=%s", therapistID, dateStr)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrTherapistNotFound):
			h.logger.Warn("GET /therapists/{id}/available-slots - Therapist not found: therapist_id=%s", therapistID)
			handlers.RespondNotFound(w, msgTherapistNotFound)

		case errors.Is(err, getAvailableSlots.ErrTherapistUnavailable):
			h.logger.Warn("GET /therapists/{id}/available-slots - Therapist unavailable: therapist_id=%s", therapistID)
			handlers.RespondConflict(w, msgTherapistUnavailable, nil)

		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET /therapists/{id}/available-slots - Service not found: service_id=%s", useCaseReq.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		default:
			h.logger.Error("GET /therapists/{id}/available-slots - Failed to get slots: therapist_id=%s, date=%s, error=%v",
				therapistID, dateStr, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("GET /therapists/{id}/available-slots - Slots retrieved successfully: therapist_id=%s, date=%s, slots_count=%d",
		therapistID, dateStr, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, response)
}
