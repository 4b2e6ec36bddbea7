package availability

import (
	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// Slot время начала и признак доступности у выбранного массажиста
type Slot struct {
	Time      types.TimeString
	Available bool
}

// IsAvailable возвращает false, если в bookings есть подтверждённое бронирование
// с той же датой, временем и массажистом, иначе true.
//
// Слоты - дискретные точки из фиксированного списка, поэтому пересечение
// интервалов по длительности не проверяется.
func IsAvailable(bookings []*domain.Booking, date types.Date, t types.TimeString, therapistID string) bool {
	for _, b := range bookings {
		if b == nil {
			continue
		}
		if b.OccupiesSlot(date, t, therapistID) {
			return false
		}
	}
	return true
}

// FreeSlots размечает каждый слот из списка признаком доступности
func FreeSlots(bookings []*domain.Booking, date types.Date, therapistID string, slots []types.TimeString) []Slot {
	idx := NewIndex(bookings)

	result := make([]Slot, len(slots))
	for i, s := range slots {
		result[i] = Slot{
			Time:      s,
			Available: idx.IsAvailable(date, s, therapistID),
		}
	}
	return result
}

type dayKey struct {
	date        types.Date
	therapistID string
}

// Index индекс занятых слотов по (дата, массажист).
// Отвечает так же, как IsAvailable, но без полного прохода на каждый запрос.
type Index struct {
	taken map[dayKey]map[types.TimeString]struct{}
}

// NewIndex строит индекс по подтверждённым бронированиям
func NewIndex(bookings []*domain.Booking) *Index {
	idx := &Index{taken: make(map[dayKey]map[types.TimeString]struct{})}
	for _, b := range bookings {
		if b == nil || !b.IsActive() {
			continue
		}
		key := dayKey{date: b.Date, therapistID: b.TherapistID}
		times, ok := idx.taken[key]
		if !ok {
			times = make(map[types.TimeString]struct{})
			idx.taken[key] = times
		}
		times[b.Time] = struct{}{}
	}
	return idx
}

// IsAvailable проверяет слот по индексу
func (idx *Index) IsAvailable(date types.Date, t types.TimeString, therapistID string) bool {
	times, ok := idx.taken[dayKey{date: date, therapistID: therapistID}]
	if !ok {
		return true
	}
	_, taken := times[t]
	return !taken
}

// TakenCount количество занятых слотов у массажиста на дату
func (idx *Index) TakenCount(date types.Date, therapistID string) int {
	return len(idx.taken[dayKey{date: date, therapistID: therapistID}])
}
