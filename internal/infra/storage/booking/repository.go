package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/psqlbuilder"
)

const tableName = "bookings"

var columns = []string{
	"id",
	"service_id",
	"therapist_id",
	"booking_date",
	"start_time",
	"customer_name",
	"customer_phone",
	"customer_email",
	"customer_notes",
	"status",
	"payment_status",
	"service_name",
	"service_price",
	"duration_minutes",
	"therapist_name",
	"created_at",
	"cancelled_at",
}

// Repository репозиторий бронирований в PostgreSQL
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// ID и created_at назначает БД; занятость слота гарантирует частичный
// уникальный индекс, нарушение которого возвращается как domain.ErrSlotTaken.
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Insert(tableName).
		Columns(
			"service_id",
			"therapist_id",
			"booking_date",
			"start_time",
			"customer_name",
			"customer_phone",
			"customer_email",
			"customer_notes",
			"status",
			"payment_status",
			"service_name",
			"service_price",
			"duration_minutes",
			"therapist_name",
		).
		Values(
			booking.ServiceID,
			booking.TherapistID,
			booking.Date,
			booking.Time,
			booking.Customer.Name,
			booking.Customer.Phone,
			booking.Customer.Email,
			booking.Customer.Notes,
			booking.Status,
			booking.PaymentStatus,
			booking.ServiceName,
			booking.ServicePrice,
			booking.DurationMinutes,
			booking.TherapistName,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := booking.Clone()
	err = r.db.QueryRowContext(ctx, query, args...).Scan(&created.ID, &created.CreatedAt)
	if err != nil {
		if isSlotViolation(err) {
			return nil, fmt.Errorf("%w: Create - date=%s time=%s therapist=%s",
				domain.ErrSlotTaken, booking.Date, booking.Time, booking.TherapistID)
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return created, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(tableName).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: GetByID - id=%s", domain.ErrBookingNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// List получает бронирования по фильтру.
// Для конкретной даты сортирует по времени начала, иначе сначала новые.
func (r *Repository) List(ctx context.Context, filter domain.BookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(columns...).From(tableName)

	// Фильтрация по дате
	if filter.Date != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"booking_date": *filter.Date})
	}

	// Фильтрация по массажисту
	if filter.TherapistID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"therapist_id": *filter.TherapistID})
	}

	// Фильтрация по статусу
	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeCancelled {
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": domain.StatusCancelled})
	}

	if filter.Date != nil {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("booking_date DESC", "start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}

// Cancel переводит подтверждённое бронирование в статус cancelled и освобождает слот
func (r *Repository) Cancel(ctx context.Context, id string) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Update(tableName).
		Set("status", domain.StatusCancelled).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.StatusConfirmed}).
		Suffix("RETURNING " + strings.Join(columns, ", ")).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if err == nil {
		return booking, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	// Ничего не обновили: либо нет такого бронирования, либо оно уже отменено
	if _, getErr := r.GetByID(ctx, id); getErr != nil {
		return nil, getErr
	}
	return nil, fmt.Errorf("%w: Cancel - id=%s", domain.ErrBookingNotCancellable, id)
}

// Ping проверяет соединение с БД
func (r *Repository) Ping(ctx context.Context) error {
	if err := r.db.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: Ping: %v", ErrExecQuery, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var b domain.Booking
	err := row.Scan(
		&b.ID,
		&b.ServiceID,
		&b.TherapistID,
		&b.Date,
		&b.Time,
		&b.Customer.Name,
		&b.Customer.Phone,
		&b.Customer.Email,
		&b.Customer.Notes,
		&b.Status,
		&b.PaymentStatus,
		&b.ServiceName,
		&b.ServicePrice,
		&b.DurationMinutes,
		&b.TherapistName,
		&b.CreatedAt,
		&b.CancelledAt,
	)
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func isSlotViolation(err error) bool {
	var pqErr *pq.Error
	if !errors.As(err, &pqErr) {
		return false
	}
	return pqErr.Code == uniqueViolation && (pqErr.Constraint == "" || pqErr.Constraint == slotIndexName)
}
