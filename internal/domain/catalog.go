package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// Service is an immutable catalog entry for an offered treatment
type Service struct {
	ID              string
	Name            string
	DurationMinutes int
	Price           decimal.Decimal
	Description     string
	Category        string
	IsActive        bool
}

// DaySchedule is a therapist's working window for one weekday
type DaySchedule struct {
	IsOpen    bool
	OpenTime  types.TimeString
	CloseTime types.TimeString
}

// Contains reports whether a slot starting at t lies within the window
func (d DaySchedule) Contains(t types.TimeString) bool {
	if !d.IsOpen {
		return false
	}
	return !t.IsBefore(d.OpenTime) && t.IsBefore(d.CloseTime)
}

// WorkingHours is a weekly schedule
type WorkingHours struct {
	Monday    DaySchedule
	Tuesday   DaySchedule
	Wednesday DaySchedule
	Thursday  DaySchedule
	Friday    DaySchedule
	Saturday  DaySchedule
	Sunday    DaySchedule
}

// ForDay returns the schedule for a weekday
func (w WorkingHours) ForDay(day time.Weekday) DaySchedule {
	switch day {
	case time.Monday:
		return w.Monday
	case time.Tuesday:
		return w.Tuesday
	case time.Wednesday:
		return w.Wednesday
	case time.Thursday:
		return w.Thursday
	case time.Friday:
		return w.Friday
	case time.Saturday:
		return w.Saturday
	case time.Sunday:
		return w.Sunday
	default:
		return DaySchedule{IsOpen: false}
	}
}

// Therapist is an immutable catalog entry.
// WorkingHours is optional: nil means every enumerated slot is offered.
type Therapist struct {
	ID              string
	Name            string
	Specialties     []string
	ExperienceYears int
	IsAvailable     bool
	WorkingHours    *WorkingHours
}

// HasSpecialty reports whether the therapist lists the given specialty
func (t *Therapist) HasSpecialty(specialty string) bool {
	for _, s := range t.Specialties {
		if s == specialty {
			return true
		}
	}
	return false
}

// WorksAt reports whether the therapist works at slot t on the given day
func (t *Therapist) WorksAt(day time.Weekday, slot types.TimeString) bool {
	if t.WorkingHours == nil {
		return true
	}
	return t.WorkingHours.ForDay(day).Contains(slot)
}
