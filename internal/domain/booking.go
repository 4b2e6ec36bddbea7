package domain

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// BookingStatus represents the status of a persisted booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// PaymentStatus mirrors the payment field stored with every booking.
// Payments are not processed by this service, so new bookings are always pending.
type PaymentStatus string

const (
	PaymentPending PaymentStatus = "pending"
)

// Customer holds the contact details collected in the customer step
type Customer struct {
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Email string `json:"email,omitempty"`
	Notes string `json:"notes,omitempty"`
}

// Booking represents a confirmed spa appointment.
// ID and CreatedAt are assigned by the repository on creation.
type Booking struct {
	ID          string
	ServiceID   string
	TherapistID string
	Date        types.Date
	Time        types.TimeString
	Customer    Customer

	Status        BookingStatus
	PaymentStatus PaymentStatus

	// Denormalized catalog data for history
	ServiceName     string
	ServicePrice    decimal.Decimal
	DurationMinutes int
	TherapistName   string

	CreatedAt   time.Time
	CancelledAt *time.Time
}

// IsActive returns true if the booking still occupies its slot
func (b *Booking) IsActive() bool {
	return b.Status == StatusConfirmed
}

// CanBeCancelled returns true if the booking can be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed
}

// OccupiesSlot reports whether b holds the given (date, time, therapist) slot
func (b *Booking) OccupiesSlot(date types.Date, t types.TimeString, therapistID string) bool {
	return b.IsActive() && b.Date == date && b.Time == t && b.TherapistID == therapistID
}

// Clone returns a deep copy
func (b *Booking) Clone() *Booking {
	if b == nil {
		return nil
	}
	c := *b
	if b.CancelledAt != nil {
		at := *b.CancelledAt
		c.CancelledAt = &at
	}
	return &c
}

// BookingsFilter selects bookings from a repository.
// Nil fields are not filtered on.
type BookingsFilter struct {
	Date             *types.Date
	TherapistID      *string
	Status           *BookingStatus
	IncludeCancelled bool
}

// Matches reports whether b passes the filter
func (f BookingsFilter) Matches(b *Booking) bool {
	if f.Date != nil && b.Date != *f.Date {
		return false
	}
	if f.TherapistID != nil && b.TherapistID != *f.TherapistID {
		return false
	}
	if f.Status != nil {
		return b.Status == *f.Status
	}
	if !f.IncludeCancelled && b.Status == StatusCancelled {
		return false
	}
	return true
}

// CustomerRecord is the customer document kept next to bookings, keyed by phone
type CustomerRecord struct {
	Name          string
	Phone         string
	Email         string
	LastBookingAt time.Time
	TotalBookings int
}
