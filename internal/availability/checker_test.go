package availability

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

func booking(date types.Date, t types.TimeString, therapistID string, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{Date: date, Time: t, TherapistID: therapistID, Status: status}
}

func TestIsAvailable_EmptyRoster(t *testing.T) {
	assert.True(t, IsAvailable(nil, "2025-06-10", "09:00", "lin"))
	assert.True(t, IsAvailable([]*domain.Booking{}, "2025-06-10", "09:00", "lin"))
}

func TestIsAvailable(t *testing.T) {
	roster := []*domain.Booking{
		booking("2025-06-10", "09:00", "lin", domain.StatusConfirmed),
		booking("2025-06-10", "10:30", "chen", domain.StatusCancelled),
		nil,
	}

	tests := []struct {
		name        string
		date        types.Date
		time        types.TimeString
		therapistID string
		want        bool
	}{
		{name: "exact confirmed match", date: "2025-06-10", time: "09:00", therapistID: "lin", want: false},
		{name: "other therapist same slot", date: "2025-06-10", time: "09:00", therapistID: "chen", want: true},
		{name: "other time", date: "2025-06-10", time: "10:30", therapistID: "lin", want: true},
		{name: "other date", date: "2025-06-11", time: "09:00", therapistID: "lin", want: true},
		{name: "cancelled booking frees slot", date: "2025-06-10", time: "10:30", therapistID: "chen", want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsAvailable(roster, tt.date, tt.time, tt.therapistID))
		})
	}
}

// Индекс обязан отвечать так же, как линейный проход
func TestIndex_AgreesWithIsAvailable(t *testing.T) {
	therapists := []string{"lin", "chen", "chang"}
	dates := []types.Date{"2025-06-10", "2025-06-11"}

	var roster []*domain.Booking
	for i, slot := range domain.DefaultTimeSlots {
		status := domain.StatusConfirmed
		if i%3 == 0 {
			status = domain.StatusCancelled
		}
		roster = append(roster, booking(dates[i%2], slot, therapists[i%3], status))
	}

	idx := NewIndex(roster)
	for _, d := range dates {
		for _, th := range therapists {
			for _, slot := range domain.DefaultTimeSlots {
				assert.Equal(t,
					IsAvailable(roster, d, slot, th),
					idx.IsAvailable(d, slot, th),
					"date=%s time=%s therapist=%s", d, slot, th)
			}
		}
	}
}

func TestFreeSlots(t *testing.T) {
	roster := []*domain.Booking{
		booking("2025-06-10", "09:00", "lin", domain.StatusConfirmed),
		booking("2025-06-10", "12:00", "lin", domain.StatusConfirmed),
		booking("2025-06-10", "10:30", "chen", domain.StatusConfirmed),
	}

	slots := FreeSlots(roster, "2025-06-10", "lin", []types.TimeString{"09:00", "10:30", "12:00"})

	assert.Equal(t, []Slot{
		{Time: "09:00", Available: false},
		{Time: "10:30", Available: true},
		{Time: "12:00", Available: false},
	}, slots)

	assert.Equal(t, 2, NewIndex(roster).TakenCount("2025-06-10", "lin"))
}
