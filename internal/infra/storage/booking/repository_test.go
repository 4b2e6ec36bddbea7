package booking

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

func TestIsSlotViolation(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{name: "slot index", err: &pq.Error{Code: "23505", Constraint: slotIndexName}, want: true},
		{name: "wrapped", err: fmt.Errorf("insert: %w", &pq.Error{Code: "23505", Constraint: slotIndexName}), want: true},
		{name: "unknown constraint name", err: &pq.Error{Code: "23505"}, want: true},
		{name: "other unique index", err: &pq.Error{Code: "23505", Constraint: "bookings_pkey"}, want: false},
		{name: "check violation", err: &pq.Error{Code: "23514"}, want: false},
		{name: "plain error", err: errors.New("connection reset"), want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isSlotViolation(tt.err))
		})
	}
}

var createdAt = time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	return NewRepository(db), mock
}

func bookingRows() *sqlmock.Rows {
	return sqlmock.NewRows(columns)
}

func addBookingRow(rows *sqlmock.Rows, id, date, start string, status domain.BookingStatus, cancelledAt interface{}) *sqlmock.Rows {
	return rows.AddRow(
		id, "swedish", "lin", date, start,
		"Wang Xiao-ming", "0912345678", "wang@example.com", "",
		string(status), string(domain.PaymentPending),
		"Swedish Massage", "2000.00", int64(60), "Lin Mei-yu",
		createdAt, cancelledAt,
	)
}

func newBooking() *domain.Booking {
	return &domain.Booking{
		ServiceID:       "swedish",
		TherapistID:     "lin",
		Date:            types.Date("2025-06-10"),
		Time:            types.TimeString("09:00"),
		Customer:        domain.Customer{Name: "Wang Xiao-ming", Phone: "0912345678"},
		Status:          domain.StatusConfirmed,
		PaymentStatus:   domain.PaymentPending,
		ServiceName:     "Swedish Massage",
		ServicePrice:    decimal.RequireFromString("2000"),
		DurationMinutes: 60,
		TherapistName:   "Lin Mei-yu",
	}
}

func TestRepository_Create(t *testing.T) {
	t.Run("returns generated id", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(`^INSERT INTO bookings \(service_id,therapist_id,booking_date,start_time,.+\) VALUES \(\$1,.+,\$14\) RETURNING id, created_at$`).
			WithArgs("swedish", "lin", "2025-06-10", "09:00",
				sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
				"confirmed", "pending", "Swedish Massage", "2000", 60, "Lin Mei-yu").
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow("6f1c2d1e-0000-4000-8000-000000000001", createdAt))

		in := newBooking()
		created, err := repo.Create(context.Background(), in)
		require.NoError(t, err)

		assert.Equal(t, "6f1c2d1e-0000-4000-8000-000000000001", created.ID)
		assert.Equal(t, createdAt, created.CreatedAt)
		assert.Equal(t, types.TimeString("09:00"), created.Time)
		assert.Empty(t, in.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("slot taken", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(`^INSERT INTO bookings`).
			WillReturnError(&pq.Error{Code: uniqueViolation, Constraint: slotIndexName})

		_, err := repo.Create(context.Background(), newBooking())
		assert.ErrorIs(t, err, domain.ErrSlotTaken)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver error", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(`^INSERT INTO bookings`).WillReturnError(errors.New("connection reset"))

		_, err := repo.Create(context.Background(), newBooking())
		assert.ErrorIs(t, err, ErrExecQuery)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_GetByID(t *testing.T) {
	const id = "6f1c2d1e-0000-4000-8000-000000000001"

	t.Run("scans postgres column types", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(`^SELECT id, service_id, .+, cancelled_at FROM bookings WHERE id = \$1$`).
			WithArgs(id).
			WillReturnRows(addBookingRow(bookingRows(), id,
				"2025-06-10", "09:00:00", domain.StatusConfirmed, nil))

		got, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)

		assert.Equal(t, id, got.ID)
		assert.Equal(t, types.Date("2025-06-10"), got.Date)
		assert.Equal(t, types.TimeString("09:00"), got.Time)
		assert.True(t, decimal.RequireFromString("2000").Equal(got.ServicePrice))
		assert.Equal(t, 60, got.DurationMinutes)
		assert.Equal(t, "wang@example.com", got.Customer.Email)
		assert.Equal(t, domain.StatusConfirmed, got.Status)
		assert.Nil(t, got.CancelledAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("date and time as time values", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(`FROM bookings WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(bookingRows().AddRow(
				id, "swedish", "lin",
				time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
				time.Date(0, 1, 1, 14, 30, 0, 0, time.UTC),
				"Wang Xiao-ming", "0912345678", "", "",
				"cancelled", "pending",
				"Swedish Massage", []byte("2000.50"), int64(60), "Lin Mei-yu",
				createdAt, createdAt.Add(time.Hour),
			))

		got, err := repo.GetByID(context.Background(), id)
		require.NoError(t, err)

		assert.Equal(t, types.Date("2025-06-10"), got.Date)
		assert.Equal(t, types.TimeString("14:30"), got.Time)
		assert.Equal(t, "2000.5", got.ServicePrice.String())
		require.NotNil(t, got.CancelledAt)
		assert.Equal(t, createdAt.Add(time.Hour), *got.CancelledAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(`FROM bookings WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(bookingRows())

		_, err := repo.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver error", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(`FROM bookings WHERE id = \$1`).
			WithArgs(id).
			WillReturnError(errors.New("connection reset"))

		_, err := repo.GetByID(context.Background(), id)
		assert.ErrorIs(t, err, ErrScanRow)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepository_List(t *testing.T) {
	date := types.Date("2025-06-10")
	therapist := "lin"
	cancelled := domain.StatusCancelled

	tests := []struct {
		name   string
		filter domain.BookingsFilter
		query  string
		args   []driver.Value
	}{
		{
			name:   "date and therapist hide cancelled",
			filter: domain.BookingsFilter{Date: &date, TherapistID: &therapist},
			query:  `FROM bookings WHERE booking_date = \$1 AND therapist_id = \$2 AND status <> \$3 ORDER BY start_time ASC$`,
			args:   []driver.Value{"2025-06-10", "lin", "cancelled"},
		},
		{
			name:   "no filter newest first",
			filter: domain.BookingsFilter{},
			query:  `FROM bookings WHERE status <> \$1 ORDER BY booking_date DESC, start_time DESC$`,
			args:   []driver.Value{"cancelled"},
		},
		{
			name:   "include cancelled",
			filter: domain.BookingsFilter{IncludeCancelled: true},
			query:  `FROM bookings ORDER BY booking_date DESC, start_time DESC$`,
		},
		{
			name:   "explicit status",
			filter: domain.BookingsFilter{Status: &cancelled},
			query:  `FROM bookings WHERE status = \$1 ORDER BY booking_date DESC, start_time DESC$`,
			args:   []driver.Value{"cancelled"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo, mock := newMockRepository(t)

			rows := bookingRows()
			addBookingRow(rows, "6f1c2d1e-0000-4000-8000-000000000001", "2025-06-10", "09:00:00", domain.StatusConfirmed, nil)
			addBookingRow(rows, "6f1c2d1e-0000-4000-8000-000000000002", "2025-06-10", "10:00:00", domain.StatusConfirmed, nil)

			expect := mock.ExpectQuery(tt.query)
			if len(tt.args) > 0 {
				expect = expect.WithArgs(tt.args...)
			}
			expect.WillReturnRows(rows)

			got, err := repo.List(context.Background(), tt.filter)
			require.NoError(t, err)
			require.Len(t, got, 2)
			assert.Equal(t, types.TimeString("09:00"), got[0].Time)
			assert.Equal(t, types.TimeString("10:00"), got[1].Time)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("empty result", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(`FROM bookings`).WillReturnRows(bookingRows())

		got, err := repo.List(context.Background(), domain.BookingsFilter{})
		require.NoError(t, err)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("bad row", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(`FROM bookings`).
			WillReturnRows(addBookingRow(bookingRows(), "6f1c2d1e-0000-4000-8000-000000000001", "not-a-date", "09:00:00", domain.StatusConfirmed, nil))

		_, err := repo.List(context.Background(), domain.BookingsFilter{})
		assert.ErrorIs(t, err, ErrScanRow)
	})
}

func TestRepository_Cancel(t *testing.T) {
	const id = "6f1c2d1e-0000-4000-8000-000000000001"
	const updateQuery = `^UPDATE bookings SET status = \$1, cancelled_at = NOW\(\) WHERE \(?id = \$2 AND status = \$3\)? RETURNING id, service_id, .+, cancelled_at$`

	t.Run("cancels confirmed booking", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(updateQuery).
			WithArgs("cancelled", id, "confirmed").
			WillReturnRows(addBookingRow(bookingRows(), id, "2025-06-10", "09:00:00", domain.StatusCancelled, createdAt.Add(time.Hour)))

		got, err := repo.Cancel(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusCancelled, got.Status)
		require.NotNil(t, got.CancelledAt)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("already cancelled", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(updateQuery).
			WithArgs("cancelled", id, "confirmed").
			WillReturnRows(bookingRows())
		mock.ExpectQuery(`FROM bookings WHERE id = \$1`).
			WithArgs(id).
			WillReturnRows(addBookingRow(bookingRows(), id, "2025-06-10", "09:00:00", domain.StatusCancelled, createdAt))

		_, err := repo.Cancel(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrBookingNotCancellable)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unknown booking", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(updateQuery).WillReturnRows(bookingRows())
		mock.ExpectQuery(`FROM bookings WHERE id = \$1`).WillReturnRows(bookingRows())

		_, err := repo.Cancel(context.Background(), id)
		assert.ErrorIs(t, err, domain.ErrBookingNotFound)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("driver error", func(t *testing.T) {
		repo, mock := newMockRepository(t)
		mock.ExpectQuery(updateQuery).WillReturnError(errors.New("connection reset"))

		_, err := repo.Cancel(context.Background(), id)
		assert.ErrorIs(t, err, ErrExecQuery)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
