package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

type fileCatalog struct {
	TimeSlots  []string        `toml:"time_slots"`
	Services   []fileService   `toml:"services"`
	Therapists []fileTherapist `toml:"therapists"`
}

type fileService struct {
	ID              string `toml:"id"`
	Name            string `toml:"name"`
	DurationMinutes int    `toml:"duration_minutes"`
	Price           string `toml:"price"`
	Description     string `toml:"description"`
	Category        string `toml:"category"`
	IsActive        *bool  `toml:"is_active"`
}

type fileTherapist struct {
	ID              string   `toml:"id"`
	Name            string   `toml:"name"`
	Specialties     []string `toml:"specialties"`
	ExperienceYears int      `toml:"experience_years"`
	IsAvailable     *bool    `toml:"is_available"`

	// "monday" = ["09:00", "20:00"]; отсутствующий день считается выходным
	WorkingHours map[string][]string `toml:"working_hours"`
}

// Load читает каталог из TOML файла.
// Если в файле нет time_slots, используется стандартный список.
func Load(path string) (*Catalog, error) {
	var fc fileCatalog
	if _, err := toml.DecodeFile(path, &fc); err != nil {
		return nil, fmt.Errorf("%w: Load - path %s: %v", ErrReadFile, path, err)
	}
	return fromFile(fc)
}

// Parse читает каталог из TOML строки
func Parse(data string) (*Catalog, error) {
	var fc fileCatalog
	if _, err := toml.Decode(data, &fc); err != nil {
		return nil, fmt.Errorf("%w: Parse: %v", ErrInvalidCatalog, err)
	}
	return fromFile(fc)
}

func fromFile(fc fileCatalog) (*Catalog, error) {
	slots := append([]types.TimeString(nil), domain.DefaultTimeSlots...)
	if len(fc.TimeSlots) > 0 {
		slots = make([]types.TimeString, 0, len(fc.TimeSlots))
		for _, raw := range fc.TimeSlots {
			ts, err := types.NewTimeStringFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("%w: time slot %q: %v", ErrInvalidCatalog, raw, err)
			}
			slots = append(slots, ts)
		}
	}

	services := make([]domain.Service, 0, len(fc.Services))
	for _, fs := range fc.Services {
		price, err := decimal.NewFromString(fs.Price)
		if err != nil {
			return nil, fmt.Errorf("%w: service %s: price %q: %v", ErrInvalidCatalog, fs.ID, fs.Price, err)
		}
		services = append(services, domain.Service{
			ID:              fs.ID,
			Name:            fs.Name,
			DurationMinutes: fs.DurationMinutes,
			Price:           price,
			Description:     fs.Description,
			Category:        fs.Category,
			IsActive:        fs.IsActive == nil || *fs.IsActive,
		})
	}

	therapists := make([]domain.Therapist, 0, len(fc.Therapists))
	for _, ft := range fc.Therapists {
		th := domain.Therapist{
			ID:              ft.ID,
			Name:            ft.Name,
			Specialties:     ft.Specialties,
			ExperienceYears: ft.ExperienceYears,
			IsAvailable:     ft.IsAvailable == nil || *ft.IsAvailable,
		}
		if len(ft.WorkingHours) > 0 {
			wh, err := parseWorkingHours(ft.WorkingHours)
			if err != nil {
				return nil, fmt.Errorf("%w: therapist %s: %v", ErrInvalidCatalog, ft.ID, err)
			}
			th.WorkingHours = wh
		}
		therapists = append(therapists, th)
	}

	return New(services, therapists, slots)
}

var weekdaysByName = map[string]time.Weekday{
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
	"sunday":    time.Sunday,
}

func parseWorkingHours(raw map[string][]string) (*domain.WorkingHours, error) {
	wh := &domain.WorkingHours{}
	for name, window := range raw {
		day, ok := weekdaysByName[strings.ToLower(name)]
		if !ok {
			return nil, fmt.Errorf("unknown weekday %q", name)
		}
		if len(window) != 2 {
			return nil, fmt.Errorf("%s: expected [open, close], got %d values", name, len(window))
		}
		open, err := types.NewTimeStringFromString(window[0])
		if err != nil {
			return nil, fmt.Errorf("%s: open time: %v", name, err)
		}
		closeAt, err := types.NewTimeStringFromString(window[1])
		if err != nil {
			return nil, fmt.Errorf("%s: close time: %v", name, err)
		}
		if !open.IsBefore(closeAt) {
			return nil, fmt.Errorf("%s: open time %s must be before close time %s", name, open, closeAt)
		}
		setDay(wh, day, domain.DaySchedule{IsOpen: true, OpenTime: open, CloseTime: closeAt})
	}
	return wh, nil
}

func setDay(wh *domain.WorkingHours, day time.Weekday, s domain.DaySchedule) {
	switch day {
	case time.Monday:
		wh.Monday = s
	case time.Tuesday:
		wh.Tuesday = s
	case time.Wednesday:
		wh.Wednesday = s
	case time.Thursday:
		wh.Thursday = s
	case time.Friday:
		wh.Friday = s
	case time.Saturday:
		wh.Saturday = s
	case time.Sunday:
		wh.Sunday = s
	}
}
