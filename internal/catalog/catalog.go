package catalog

import (
	"fmt"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// Catalog неизменяемый набор услуг, массажистов и слотов.
// Читается один раз при старте и дальше только отдаёт копии.
type Catalog struct {
	services   []domain.Service
	therapists []domain.Therapist
	timeSlots  []types.TimeString

	servicesByID   map[string]int
	therapistsByID map[string]int
}

// New собирает каталог и проверяет его целостность
func New(services []domain.Service, therapists []domain.Therapist, timeSlots []types.TimeString) (*Catalog, error) {
	c := &Catalog{
		services:       append([]domain.Service(nil), services...),
		therapists:     make([]domain.Therapist, 0, len(therapists)),
		timeSlots:      append([]types.TimeString(nil), timeSlots...),
		servicesByID:   make(map[string]int, len(services)),
		therapistsByID: make(map[string]int, len(therapists)),
	}

	if len(c.timeSlots) == 0 {
		return nil, fmt.Errorf("%w: time slot list is empty", ErrInvalidCatalog)
	}
	seenSlots := make(map[types.TimeString]struct{}, len(c.timeSlots))
	for i, slot := range c.timeSlots {
		if err := slot.Validate(); err != nil {
			return nil, fmt.Errorf("%w: time slot #%d: %v", ErrInvalidCatalog, i, err)
		}
		if _, dup := seenSlots[slot]; dup {
			return nil, fmt.Errorf("%w: duplicate time slot %s", ErrInvalidCatalog, slot)
		}
		seenSlots[slot] = struct{}{}
	}

	for i, s := range c.services {
		if s.ID == "" {
			return nil, fmt.Errorf("%w: service #%d has empty id", ErrInvalidCatalog, i)
		}
		if s.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: service %s: duration must be positive", ErrInvalidCatalog, s.ID)
		}
		if s.Price.IsNegative() {
			return nil, fmt.Errorf("%w: service %s: price must not be negative", ErrInvalidCatalog, s.ID)
		}
		if _, dup := c.servicesByID[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate service id %s", ErrInvalidCatalog, s.ID)
		}
		c.servicesByID[s.ID] = i
	}

	for i, t := range therapists {
		if t.ID == "" {
			return nil, fmt.Errorf("%w: therapist #%d has empty id", ErrInvalidCatalog, i)
		}
		if _, dup := c.therapistsByID[t.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate therapist id %s", ErrInvalidCatalog, t.ID)
		}
		c.therapistsByID[t.ID] = i
		c.therapists = append(c.therapists, cloneTherapist(t))
	}

	return c, nil
}

// Service ищет услугу по ID
func (c *Catalog) Service(id string) (domain.Service, bool) {
	i, ok := c.servicesByID[id]
	if !ok {
		return domain.Service{}, false
	}
	return c.services[i], true
}

// Therapist ищет массажиста по ID
func (c *Catalog) Therapist(id string) (domain.Therapist, bool) {
	i, ok := c.therapistsByID[id]
	if !ok {
		return domain.Therapist{}, false
	}
	return cloneTherapist(c.therapists[i]), true
}

// Services возвращает копию списка услуг
func (c *Catalog) Services() []domain.Service {
	return append([]domain.Service(nil), c.services...)
}

// ActiveServices только услуги, доступные для записи
func (c *Catalog) ActiveServices() []domain.Service {
	result := make([]domain.Service, 0, len(c.services))
	for _, s := range c.services {
		if s.IsActive {
			result = append(result, s)
		}
	}
	return result
}

// Therapists возвращает копию списка массажистов
func (c *Catalog) Therapists() []domain.Therapist {
	result := make([]domain.Therapist, len(c.therapists))
	for i, t := range c.therapists {
		result[i] = cloneTherapist(t)
	}
	return result
}

// TimeSlots возвращает копию списка слотов
func (c *Catalog) TimeSlots() []types.TimeString {
	return append([]types.TimeString(nil), c.timeSlots...)
}

// IsTimeSlot проверяет, что время входит в фиксированный список слотов
func (c *Catalog) IsTimeSlot(t types.TimeString) bool {
	for _, s := range c.timeSlots {
		if s == t {
			return true
		}
	}
	return false
}

func cloneTherapist(t domain.Therapist) domain.Therapist {
	t.Specialties = append([]string(nil), t.Specialties...)
	if t.WorkingHours != nil {
		wh := *t.WorkingHours
		t.WorkingHours = &wh
	}
	return t
}

// WithTimeSlots возвращает копию каталога с другим списком слотов
func (c *Catalog) WithTimeSlots(slots []types.TimeString) (*Catalog, error) {
	return New(c.services, c.therapists, slots)
}
