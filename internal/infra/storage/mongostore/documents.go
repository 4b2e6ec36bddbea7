package mongostore

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

type customerFields struct {
	Name  string `bson:"name"`
	Phone string `bson:"phone"`
	Email string `bson:"email,omitempty"`
	Notes string `bson:"notes,omitempty"`
}

type bookingDocument struct {
	ID              string               `bson:"_id"`
	ServiceID       string               `bson:"serviceId"`
	TherapistID     string               `bson:"therapistId"`
	Date            string               `bson:"date"`
	Time            string               `bson:"time"`
	Customer        customerFields       `bson:"customer"`
	Status          string               `bson:"status"`
	PaymentStatus   string               `bson:"paymentStatus"`
	ServiceName     string               `bson:"serviceName"`
	ServicePrice    primitive.Decimal128 `bson:"servicePrice"`
	DurationMinutes int                  `bson:"durationMinutes"`
	TherapistName   string               `bson:"therapistName"`
	CreatedAt       time.Time            `bson:"createdAt"`
	CancelledAt     *time.Time           `bson:"cancelledAt,omitempty"`
}

type customerDocument struct {
	Phone         string    `bson:"_id"`
	Name          string    `bson:"name"`
	Email         string    `bson:"email"`
	LastBookingAt time.Time `bson:"lastBookingAt"`
	TotalBookings int       `bson:"totalBookings"`
}

func toBookingDocument(b *domain.Booking) (bookingDocument, error) {
	price, err := primitive.ParseDecimal128(b.ServicePrice.String())
	if err != nil {
		return bookingDocument{}, fmt.Errorf("service price %s: %v", b.ServicePrice, err)
	}

	return bookingDocument{
		ID:          b.ID,
		ServiceID:   b.ServiceID,
		TherapistID: b.TherapistID,
		Date:        b.Date.String(),
		Time:        b.Time.String(),
		Customer: customerFields{
			Name:  b.Customer.Name,
			Phone: b.Customer.Phone,
			Email: b.Customer.Email,
			Notes: b.Customer.Notes,
		},
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		ServiceName:     b.ServiceName,
		ServicePrice:    price,
		DurationMinutes: b.DurationMinutes,
		TherapistName:   b.TherapistName,
		CreatedAt:       b.CreatedAt,
		CancelledAt:     b.CancelledAt,
	}, nil
}

func (d bookingDocument) toDomain() (*domain.Booking, error) {
	price, err := decimal.NewFromString(d.ServicePrice.String())
	if err != nil {
		return nil, fmt.Errorf("%w: booking %s: price %s: %v", ErrDecode, d.ID, d.ServicePrice, err)
	}

	b := &domain.Booking{
		ID:          d.ID,
		ServiceID:   d.ServiceID,
		TherapistID: d.TherapistID,
		Date:        types.Date(d.Date),
		Time:        types.TimeString(d.Time),
		Customer: domain.Customer{
			Name:  d.Customer.Name,
			Phone: d.Customer.Phone,
			Email: d.Customer.Email,
			Notes: d.Customer.Notes,
		},
		Status:          domain.BookingStatus(d.Status),
		PaymentStatus:   domain.PaymentStatus(d.PaymentStatus),
		ServiceName:     d.ServiceName,
		ServicePrice:    price,
		DurationMinutes: d.DurationMinutes,
		TherapistName:   d.TherapistName,
		CreatedAt:       d.CreatedAt.UTC(),
	}
	if d.CancelledAt != nil {
		at := d.CancelledAt.UTC()
		b.CancelledAt = &at
	}
	return b, nil
}

func (d customerDocument) toDomain() *domain.CustomerRecord {
	return &domain.CustomerRecord{
		Name:          d.Name,
		Phone:         d.Phone,
		Email:         d.Email,
		LastBookingAt: d.LastBookingAt.UTC(),
		TotalBookings: d.TotalBookings,
	}
}
