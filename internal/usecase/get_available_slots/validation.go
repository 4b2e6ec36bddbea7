package get_available_slots

import (
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if strings.TrimSpace(req.TherapistID) == "" {
		return fmt.Errorf("%w: therapistID is required", ErrInvalidInput)
	}

	// Проверяем формат даты
	if req.Date.IsZero() {
		return fmt.Errorf("%w: date is required", ErrInvalidDate)
	}
	if err := req.Date.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}

	return nil
}

// validateDate проверяет, что дата не в прошлом
func validateDate(date types.Date, now time.Time) error {
	if isDateInPast(date, now) {
		return fmt.Errorf("%w: %s is in the past", ErrInvalidDate, date)
	}
	return nil
}
