package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/SMC-SpaBooking/internal/usecase/get_available_slots"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// AvailableSlotsResponse HTTP response model
type AvailableSlotsResponse struct {
	Date            string          `json:"date"`
	TherapistID     string          `json:"therapistId"`
	TherapistName   string          `json:"therapistName"`
	ServiceID       string          `json:"serviceId,omitempty"`
	DurationMinutes int             `json:"durationMinutes,omitempty"`
	Slots           []AvailableSlot `json:"slots"`
}

// AvailableSlot модель временного слота
type AvailableSlot struct {
	StartTime string `json:"startTime"`
	Available bool   `json:"available"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailableSlotsResponse {
	slots := make([]AvailableSlot, len(resp.Slots))
	for i, slot := range resp.Slots {
		slots[i] = AvailableSlot{
			StartTime: slot.StartTime.String(),
			Available: slot.Available,
		}
	}

	return &AvailableSlotsResponse{
		Date:            resp.Date.String(),
		TherapistID:     resp.TherapistID,
		TherapistName:   resp.TherapistName,
		ServiceID:       resp.ServiceID,
		DurationMinutes: resp.DurationMinutes,
		Slots:           slots,
	}
}

// ToUseCaseRequest создает запрос use case из параметров запроса
func ToUseCaseRequest(therapistID, serviceID, dateStr string) (*getAvailableSlots.Request, error) {
	// Парсим дату
	date, err := types.ParseDate(dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailableSlots.Request{
		TherapistID: therapistID,
		ServiceID:   serviceID,
		Date:        date,
	}, nil
}
