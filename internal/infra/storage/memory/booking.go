package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// TimeProvider источник времени для created_at / cancelled_at
type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now().UTC() }

type slotKey struct {
	date        types.Date
	time        types.TimeString
	therapistID string
}

// BookingRepository хранилище бронирований в памяти процесса.
// Уникальность подтверждённого слота проверяется под мьютексом.
type BookingRepository struct {
	mu       sync.RWMutex
	bookings map[string]*domain.Booking
	taken    map[slotKey]string
	clock    TimeProvider
}

// NewBookingRepository создает пустое хранилище; nil clock - системное время
func NewBookingRepository(clock TimeProvider) *BookingRepository {
	if clock == nil {
		clock = realTimeProvider{}
	}
	return &BookingRepository{
		bookings: make(map[string]*domain.Booking),
		taken:    make(map[slotKey]string),
		clock:    clock,
	}
}

// Create сохраняет бронирование, назначая ID и CreatedAt
func (r *BookingRepository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: Create: %v", ErrUnavailable, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := slotKey{date: booking.Date, time: booking.Time, therapistID: booking.TherapistID}
	if booking.IsActive() {
		if id, ok := r.taken[key]; ok {
			return nil, fmt.Errorf("%w: Create - held by booking id=%s", domain.ErrSlotTaken, id)
		}
	}

	created := booking.Clone()
	created.ID = uuid.NewString()
	created.CreatedAt = r.clock.Now()

	r.bookings[created.ID] = created
	if created.IsActive() {
		r.taken[key] = created.ID
	}

	return created.Clone(), nil
}

// GetByID возвращает копию бронирования
func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByID: %v", ErrUnavailable, err)
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: GetByID - id=%s", domain.ErrBookingNotFound, id)
	}
	return b.Clone(), nil
}

// List возвращает копии бронирований по фильтру в том же порядке, что и PostgreSQL
func (r *BookingRepository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: List: %v", ErrUnavailable, err)
	}

	r.mu.RLock()
	result := make([]*domain.Booking, 0)
	for _, b := range r.bookings {
		if filter.Matches(b) {
			result = append(result, b.Clone())
		}
	}
	r.mu.RUnlock()

	sort.Slice(result, func(i, j int) bool {
		a, b := result[i], result[j]
		if filter.Date != nil {
			return a.Time.IsBefore(b.Time)
		}
		if a.Date != b.Date {
			return b.Date.IsBefore(a.Date)
		}
		return b.Time.IsBefore(a.Time)
	})

	return result, nil
}

// Cancel отменяет подтверждённое бронирование и освобождает слот
func (r *BookingRepository) Cancel(ctx context.Context, id string) (*domain.Booking, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: Cancel: %v", ErrUnavailable, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.bookings[id]
	if !ok {
		return nil, fmt.Errorf("%w: Cancel - id=%s", domain.ErrBookingNotFound, id)
	}
	if !b.CanBeCancelled() {
		return nil, fmt.Errorf("%w: Cancel - id=%s status=%s", domain.ErrBookingNotCancellable, id, b.Status)
	}

	now := r.clock.Now()
	b.Status = domain.StatusCancelled
	b.CancelledAt = &now
	delete(r.taken, slotKey{date: b.Date, time: b.Time, therapistID: b.TherapistID})

	return b.Clone(), nil
}

// Ping всегда успешен
func (r *BookingRepository) Ping(ctx context.Context) error {
	return ctx.Err()
}
