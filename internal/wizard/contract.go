package wizard

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// BookingRepository persists confirmed bookings.
// Create assigns ID and CreatedAt and returns the stored record;
// a uniqueness violation on (date, time, therapist) must wrap domain.ErrSlotTaken.
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error)
}

// Catalog resolves the static services, therapists and slot list
type Catalog interface {
	Service(id string) (domain.Service, bool)
	Therapist(id string) (domain.Therapist, bool)
	IsTimeSlot(t types.TimeString) bool
}

// TimeProvider source of "today" for the date gate
type TimeProvider interface {
	Now() time.Time
}

// Logger interface for logging
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider production time provider
type RealTimeProvider struct{}

// Now returns the current time
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
