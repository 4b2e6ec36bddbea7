package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-SpaBooking/internal/availability"
	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// workingSlots оставляет слоты, попадающие в рабочие часы массажиста в этот день недели.
// Слот должен начинаться не раньше открытия и строго раньше закрытия.
func workingSlots(therapist domain.Therapist, weekday time.Weekday, slots []types.TimeString) []types.TimeString {
	result := make([]types.TimeString, 0, len(slots))
	for _, slot := range slots {
		if therapist.WorksAt(weekday, slot) {
			result = append(result, slot)
		}
	}
	return result
}

// markAvailability размечает слоты по подтверждённым бронированиям массажиста
func markAvailability(bookings []*domain.Booking, date types.Date, therapistID string, slots []types.TimeString) []Slot {
	free := availability.FreeSlots(bookings, date, therapistID, slots)

	result := make([]Slot, len(free))
	for i, s := range free {
		result[i] = Slot{
			StartTime: s.Time,
			Available: s.Available,
		}
	}
	return result
}

// isDateInPast проверяет, что дата в прошлом (раньше сегодняшнего дня)
func isDateInPast(date types.Date, now time.Time) bool {
	return date.IsBefore(types.NewDate(now))
}
