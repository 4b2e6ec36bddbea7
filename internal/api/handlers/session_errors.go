package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-SpaBooking/internal/service/sessions"
	"github.com/m04kA/SMC-SpaBooking/internal/wizard"
)

const (
	msgSessionNotFound  = "сессия не найдена или истекла"
	msgValidationFailed = "шаг заполнен не полностью"
	msgSlotTaken        = "выбранное время уже занято, выберите другое"
	msgBusy             = "бронирование уже отправляется"
	msgTerminal         = "бронирование подтверждено, начните заново"
	msgSubmitRequired   = "данные клиента заполнены, отправьте бронирование"
	msgInvalidState     = "операция недоступна на текущем шаге"
	msgInvalidInput     = "некорректные данные"
	msgStorage          = "не удалось сохранить бронирование, попробуйте еще раз"
)

// ValidationDetails детали ошибки незаполненного шага
type ValidationDetails struct {
	Step   string              `json:"step"`
	Fields []wizard.FieldError `json:"fields"`
}

// ConflictDetails детали конфликта слота
type ConflictDetails struct {
	Date        string `json:"date"`
	Time        string `json:"time"`
	TherapistID string `json:"therapistId"`
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RespondSessionError переводит ошибки сервиса сессий и мастера в HTTP ответ
func RespondSessionError(w http.ResponseWriter, logger Logger, route, sessionID string, err error) {
	var (
		validationErr *wizard.ValidationError
		conflictErr   *wizard.SlotConflictError
	)

	switch {
	case errors.Is(err, sessions.ErrSessionNotFound):
		logger.Warn("%s - Session not found: session_id=%s", route, sessionID)
		RespondNotFound(w, msgSessionNotFound)

	case errors.As(err, &validationErr):
		logger.Warn("%s - Validation failed: session_id=%s, fields=%v", route, sessionID, validationErr.FieldNames())
		RespondUnprocessable(w, msgValidationFailed, ValidationDetails{
			Step:   validationErr.Step.String(),
			Fields: validationErr.Fields,
		})

	case errors.As(err, &conflictErr):
		logger.Warn("%s - Slot conflict: session_id=%s, date=%s, time=%s, therapist=%s",
			route, sessionID, conflictErr.Date, conflictErr.Time, conflictErr.TherapistID)
		RespondConflict(w, msgSlotTaken, ConflictDetails{
			Date:        conflictErr.Date.String(),
			Time:        conflictErr.Time.String(),
			TherapistID: conflictErr.TherapistID,
		})

	case errors.Is(err, wizard.ErrBusy):
		logger.Warn("%s - Busy: session_id=%s", route, sessionID)
		RespondConflict(w, msgBusy, nil)

	case errors.Is(err, wizard.ErrTerminalState):
		logger.Warn("%s - Terminal state: session_id=%s", route, sessionID)
		RespondConflict(w, msgTerminal, nil)

	case errors.Is(err, wizard.ErrSubmitRequired):
		logger.Warn("%s - Submit required: session_id=%s", route, sessionID)
		RespondConflict(w, msgSubmitRequired, nil)

	case errors.Is(err, wizard.ErrInvalidState):
		logger.Warn("%s - Invalid state: session_id=%s", route, sessionID)
		RespondConflict(w, msgInvalidState, nil)

	case errors.Is(err, sessions.ErrInvalidInput), errors.Is(err, wizard.ErrUnknownField):
		logger.Warn("%s - Invalid input: session_id=%s, error=%v", route, sessionID, err)
		RespondBadRequest(w, msgInvalidInput)

	case errors.Is(err, wizard.ErrStorage):
		logger.Error("%s - Storage error: session_id=%s, error=%v", route, sessionID, err)
		RespondServiceUnavailable(w, msgStorage)

	default:
		logger.Error("%s - Failed: session_id=%s, error=%v", route, sessionID, err)
		RespondInternalError(w)
	}
}
