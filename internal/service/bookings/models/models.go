package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")

	// ErrInvalidDate возвращается при некорректной дате фильтра
	ErrInvalidDate = errors.New("invalid date")
)

// Request модели

// ListBookingsRequest запрос на получение списка бронирований
type ListBookingsRequest struct {
	Date             *string `json:"date,omitempty"`        // "2025-10-15"
	TherapistID      *string `json:"therapistId,omitempty"` // Фильтр по массажисту
	Status           *string `json:"status,omitempty"`      // confirmed | cancelled
	IncludeCancelled bool    `json:"includeCancelled,omitempty"`
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListBookingsRequest) ToDomainFilter() (domain.BookingsFilter, error) {
	filter := domain.BookingsFilter{
		TherapistID:      r.TherapistID,
		IncludeCancelled: r.IncludeCancelled,
	}

	if r.Date != nil {
		date, err := types.ParseDate(*r.Date)
		if err != nil {
			return filter, fmt.Errorf("%w: %v", ErrInvalidDate, err)
		}
		filter.Date = &date
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// CustomerResponse контакты клиента
type CustomerResponse struct {
	Name  string  `json:"name"`
	Phone string  `json:"phone"`
	Email *string `json:"email,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            string           `json:"id"`
	ServiceID     string           `json:"serviceId"`
	TherapistID   string           `json:"therapistId"`
	Date          string           `json:"date"` // "2025-10-15"
	Time          string           `json:"time"` // "10:30"
	Customer      CustomerResponse `json:"customer"`
	Status        string           `json:"status"`
	PaymentStatus string           `json:"paymentStatus"`

	// Денормализованные данные
	ServiceName     string `json:"serviceName"`
	ServicePrice    string `json:"servicePrice"`
	DurationMinutes int    `json:"durationMinutes"`
	TherapistName   string `json:"therapistName"`

	CreatedAt   time.Time `json:"createdAt"`
	CancelledAt *string   `json:"cancelledAt,omitempty"` // ISO 8601 format
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:          b.ID,
		ServiceID:   b.ServiceID,
		TherapistID: b.TherapistID,
		Date:        b.Date.String(),
		Time:        b.Time.String(),
		Customer: CustomerResponse{
			Name:  b.Customer.Name,
			Phone: b.Customer.Phone,
			Email: optional(b.Customer.Email),
			Notes: optional(b.Customer.Notes),
		},
		Status:          string(b.Status),
		PaymentStatus:   string(b.PaymentStatus),
		ServiceName:     b.ServiceName,
		ServicePrice:    b.ServicePrice.StringFixed(2),
		DurationMinutes: b.DurationMinutes,
		TherapistName:   b.TherapistName,
		CreatedAt:       b.CreatedAt,
	}

	// Конвертируем CancelledAt в строку ISO 8601
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}

	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.StatusConfirmed, domain.StatusCancelled:
		return domain.BookingStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
