package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

// CustomerRepository карточки клиентов в памяти, ключ - телефон
type CustomerRepository struct {
	mu        sync.Mutex
	customers map[string]domain.CustomerRecord
}

// NewCustomerRepository создает пустое хранилище клиентов
func NewCustomerRepository() *CustomerRepository {
	return &CustomerRepository{customers: make(map[string]domain.CustomerRecord)}
}

// Upsert создаёт карточку или обновляет контакты и счётчик бронирований
func (r *CustomerRepository) Upsert(ctx context.Context, record *domain.CustomerRecord) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: Upsert: %v", ErrUnavailable, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, ok := r.customers[record.Phone]
	if !ok {
		rec := *record
		rec.TotalBookings = 1
		r.customers[record.Phone] = rec
		return nil
	}

	existing.Name = record.Name
	if record.Email != "" {
		existing.Email = record.Email
	}
	if record.LastBookingAt.After(existing.LastBookingAt) {
		existing.LastBookingAt = record.LastBookingAt
	}
	existing.TotalBookings++
	r.customers[record.Phone] = existing
	return nil
}

// GetByPhone возвращает копию карточки клиента
func (r *CustomerRepository) GetByPhone(ctx context.Context, phone string) (*domain.CustomerRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByPhone: %v", ErrUnavailable, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.customers[phone]
	if !ok {
		return nil, fmt.Errorf("%w: phone=%s", ErrCustomerNotFound, phone)
	}
	return &rec, nil
}
