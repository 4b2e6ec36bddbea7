package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

var (
	weekdayHours = domain.DaySchedule{IsOpen: true, OpenTime: "09:00", CloseTime: "20:00"}
	weekendHours = domain.DaySchedule{IsOpen: true, OpenTime: "10:00", CloseTime: "18:00"}
)

func defaultWorkingHours() *domain.WorkingHours {
	return &domain.WorkingHours{
		Monday:    weekdayHours,
		Tuesday:   weekdayHours,
		Wednesday: weekdayHours,
		Thursday:  weekdayHours,
		Friday:    weekdayHours,
		Saturday:  weekendHours,
		Sunday:    weekendHours,
	}
}

// DefaultServices встроенный список услуг салона
func DefaultServices() []domain.Service {
	return []domain.Service{
		{
			ID:              "doterra-massage",
			Name:            "doTERRA Aromatherapy Massage",
			DurationMinutes: 90,
			Price:           decimal.NewFromInt(2800),
			Description:     "Full-body massage with doTERRA essential oils",
			Category:        "aromatherapy",
			IsActive:        true,
		},
		{
			ID:              "deep-tissue",
			Name:            "Deep Tissue Massage",
			DurationMinutes: 60,
			Price:           decimal.NewFromInt(2200),
			Description:     "Focused pressure on deep muscle layers",
			Category:        "therapeutic",
			IsActive:        true,
		},
		{
			ID:              "relaxing-oil",
			Name:            "Relaxing Oil Massage",
			DurationMinutes: 75,
			Price:           decimal.NewFromInt(2500),
			Description:     "Gentle oil massage for stress relief",
			Category:        "relaxation",
			IsActive:        true,
		},
		{
			ID:              "hot-stone",
			Name:            "Hot Stone Therapy",
			DurationMinutes: 90,
			Price:           decimal.NewFromInt(3200),
			Description:     "Heated basalt stones combined with massage",
			Category:        "therapeutic",
			IsActive:        true,
		},
		{
			ID:              "prenatal",
			Name:            "Prenatal Massage",
			DurationMinutes: 60,
			Price:           decimal.NewFromInt(2400),
			Description:     "Side-lying massage for expecting mothers",
			Category:        "specialty",
			IsActive:        true,
		},
		{
			ID:              "swedish",
			Name:            "Swedish Massage",
			DurationMinutes: 60,
			Price:           decimal.NewFromInt(2000),
			Description:     "Classic long-stroke relaxation massage",
			Category:        "relaxation",
			IsActive:        true,
		},
	}
}

// DefaultTherapists встроенный список массажистов
func DefaultTherapists() []domain.Therapist {
	return []domain.Therapist{
		{
			ID:              "lin",
			Name:            "Lin Mei-yu",
			Specialties:     []string{"aromatherapy", "relaxation"},
			ExperienceYears: 8,
			IsAvailable:     true,
			WorkingHours:    defaultWorkingHours(),
		},
		{
			ID:              "chen",
			Name:            "Chen Ya-wen",
			Specialties:     []string{"therapeutic", "sports"},
			ExperienceYears: 6,
			IsAvailable:     true,
			WorkingHours:    defaultWorkingHours(),
		},
		{
			ID:              "chang",
			Name:            "Chang Hui-chuan",
			Specialties:     []string{"prenatal", "relaxation"},
			ExperienceYears: 5,
			IsAvailable:     true,
			WorkingHours:    defaultWorkingHours(),
		},
	}
}

// Default каталог, с которым сервис стартует без файла каталога
func Default() *Catalog {
	c, err := New(DefaultServices(), DefaultTherapists(), append([]types.TimeString(nil), domain.DefaultTimeSlots...))
	if err != nil {
		panic("catalog: default catalog is invalid: " + err.Error())
	}
	return c
}
