package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/psqlbuilder"
)

// Repository карточки клиентов в PostgreSQL, ключ - телефон
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория клиентов
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Upsert создаёт карточку клиента или обновляет контакты и увеличивает счётчик бронирований
func (r *Repository) Upsert(ctx context.Context, record *domain.CustomerRecord) error {
	query, args, err := psqlbuilder.Insert("customers").
		Columns("phone", "name", "email", "last_booking_at", "total_bookings").
		Values(record.Phone, record.Name, record.Email, record.LastBookingAt, 1).
		Suffix(`ON CONFLICT (phone) DO UPDATE SET
			name = EXCLUDED.name,
			email = CASE WHEN EXCLUDED.email = '' THEN customers.email ELSE EXCLUDED.email END,
			last_booking_at = GREATEST(customers.last_booking_at, EXCLUDED.last_booking_at),
			total_bookings = customers.total_bookings + 1`).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Upsert - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: Upsert - phone=%s: %v", ErrExecQuery, record.Phone, err)
	}
	return nil
}

// GetByPhone получает карточку клиента по телефону
func (r *Repository) GetByPhone(ctx context.Context, phone string) (*domain.CustomerRecord, error) {
	query, args, err := psqlbuilder.Select("phone", "name", "email", "last_booking_at", "total_bookings").
		From("customers").
		Where(squirrel.Eq{"phone": phone}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - build select query: %v", ErrBuildQuery, err)
	}

	var rec domain.CustomerRecord
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&rec.Phone,
		&rec.Name,
		&rec.Email,
		&rec.LastBookingAt,
		&rec.TotalBookings,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCustomerNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByPhone - scan: %v", ErrExecQuery, err)
	}
	return &rec, nil
}
