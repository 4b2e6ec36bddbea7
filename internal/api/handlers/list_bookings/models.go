package list_bookings

import (
	"fmt"
	"strconv"

	"github.com/m04kA/SMC-SpaBooking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(
	dateStr string,
	therapistID string,
	statusStr string,
	includeCancelledStr string,
) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		IncludeCancelled: false, // По умолчанию только подтверждённые
	}

	if dateStr != "" {
		req.Date = &dateStr
	}

	if therapistID != "" {
		req.TherapistID = &therapistID
	}

	if statusStr != "" {
		req.Status = &statusStr
	}

	// Парсим includeCancelled если указан
	if includeCancelledStr != "" {
		includeCancelled, err := strconv.ParseBool(includeCancelledStr)
		if err != nil {
			return nil, fmt.Errorf("invalid includeCancelled value: %w", err)
		}
		req.IncludeCancelled = includeCancelled
	}

	return req, nil
}
