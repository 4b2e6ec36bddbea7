package get_catalog

import (
	"strings"
	"time"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

// CatalogResponse HTTP response model
type CatalogResponse struct {
	Services   []ServiceResponse   `json:"services"`
	Therapists []TherapistResponse `json:"therapists"`
	TimeSlots  []string            `json:"timeSlots"`
}

// ServiceResponse услуга каталога
type ServiceResponse struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	DurationMinutes int    `json:"durationMinutes"`
	Price           string `json:"price"`
	Description     string `json:"description,omitempty"`
	Category        string `json:"category,omitempty"`
}

// TherapistResponse массажист каталога
type TherapistResponse struct {
	ID              string                 `json:"id"`
	Name            string                 `json:"name"`
	Specialties     []string               `json:"specialties"`
	ExperienceYears int                    `json:"experienceYears"`
	IsAvailable     bool                   `json:"isAvailable"`
	WorkingHours    map[string]DaySchedule `json:"workingHours,omitempty"`
}

// DaySchedule рабочие часы на день недели
type DaySchedule struct {
	IsOpen    bool   `json:"isOpen"`
	OpenTime  string `json:"openTime,omitempty"`
	CloseTime string `json:"closeTime,omitempty"`
}

var weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

// FromCatalog конвертирует каталог в HTTP response
func FromCatalog(services []domain.Service, therapists []domain.Therapist, slots []string) *CatalogResponse {
	resp := &CatalogResponse{
		Services:   make([]ServiceResponse, 0, len(services)),
		Therapists: make([]TherapistResponse, 0, len(therapists)),
		TimeSlots:  slots,
	}

	for _, s := range services {
		resp.Services = append(resp.Services, ServiceResponse{
			ID:              s.ID,
			Name:            s.Name,
			DurationMinutes: s.DurationMinutes,
			Price:           s.Price.StringFixed(2),
			Description:     s.Description,
			Category:        s.Category,
		})
	}

	for _, t := range therapists {
		resp.Therapists = append(resp.Therapists, TherapistResponse{
			ID:              t.ID,
			Name:            t.Name,
			Specialties:     append([]string{}, t.Specialties...),
			ExperienceYears: t.ExperienceYears,
			IsAvailable:     t.IsAvailable,
			WorkingHours:    fromWorkingHours(t.WorkingHours),
		})
	}

	return resp
}

func fromWorkingHours(wh *domain.WorkingHours) map[string]DaySchedule {
	if wh == nil {
		return nil
	}

	days := make(map[string]DaySchedule, len(weekdays))
	for _, day := range weekdays {
		s := wh.ForDay(day)
		ds := DaySchedule{IsOpen: s.IsOpen}
		if s.IsOpen {
			ds.OpenTime = s.OpenTime.String()
			ds.CloseTime = s.CloseTime.String()
		}
		days[strings.ToLower(day.String())] = ds
	}
	return days
}
