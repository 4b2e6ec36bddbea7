package bookings

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/internal/infra/storage/memory"
	"github.com/m04kA/SMC-SpaBooking/internal/service/bookings/models"
	"github.com/m04kA/SMC-SpaBooking/pkg/logger"
	"github.com/m04kA/SMC-SpaBooking/pkg/ptr"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func seed(t *testing.T, repo *memory.BookingRepository, therapistID, date, slot string) *domain.Booking {
	t.Helper()
	b, err := repo.Create(context.Background(), &domain.Booking{
		ServiceID:       "swedish",
		TherapistID:     therapistID,
		Date:            types.Date(date),
		Time:            types.TimeString(slot),
		Customer:        domain.Customer{Name: "Wang", Phone: "0912"},
		Status:          domain.StatusConfirmed,
		PaymentStatus:   domain.PaymentPending,
		ServiceName:     "Swedish Massage",
		ServicePrice:    decimal.RequireFromString("2200"),
		DurationMinutes: 60,
	})
	require.NoError(t, err)
	return b
}

func newService() (*Service, *memory.BookingRepository) {
	repo := memory.NewBookingRepository(fixedClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)})
	return NewService(repo, logger.NewNop()), repo
}

func TestService_GetByID(t *testing.T) {
	svc, repo := newService()
	created := seed(t, repo, "lin", "2025-06-10", "09:00")

	got, err := svc.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "2200.00", got.ServicePrice)
	assert.Equal(t, "2025-06-10", got.Date)
	assert.Nil(t, got.Customer.Email)

	_, err = svc.GetByID(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.GetByID(context.Background(), " ")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.GetByID(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_List(t *testing.T) {
	svc, repo := newService()
	seed(t, repo, "lin", "2025-06-10", "10:30")
	seed(t, repo, "lin", "2025-06-10", "09:00")
	seed(t, repo, "chen", "2025-06-10", "09:00")
	seed(t, repo, "lin", "2025-06-11", "09:00")

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{
		Date:        ptr.Ptr("2025-06-10"),
		TherapistID: ptr.Ptr("lin"),
	})
	require.NoError(t, err)
	require.Len(t, resp.Bookings, 2)
	assert.Equal(t, "09:00", resp.Bookings[0].Time)
	assert.Equal(t, "10:30", resp.Bookings[1].Time)

	all, err := svc.List(context.Background(), &models.ListBookingsRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Bookings, 4)
}

type recordingLogger struct {
	infos []string
}

func (l *recordingLogger) Info(format string, v ...interface{}) {
	l.infos = append(l.infos, fmt.Sprintf(format, v...))
}
func (l *recordingLogger) Warn(string, ...interface{}) {}
func (l *recordingLogger) Error(string, ...interface{}) {}

func TestService_List_LogsFilterVerbatim(t *testing.T) {
	log := &recordingLogger{}
	svc := NewService(memory.NewBookingRepository(nil), log)

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{TherapistID: ptr.Ptr("lin%d%s")})
	require.NoError(t, err)

	require.NotEmpty(t, log.infos)
	assert.Equal(t, "List: fetching bookings, therapist=lin%d%s", log.infos[0])
}

func TestService_List_InvalidFilter(t *testing.T) {
	svc, _ := newService()

	_, err := svc.List(context.Background(), &models.ListBookingsRequest{Date: ptr.Ptr("10/06/2025")})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("pending")})
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestService_Cancel(t *testing.T) {
	svc, repo := newService()
	created := seed(t, repo, "lin", "2025-06-10", "09:00")

	cancelled, err := svc.Cancel(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusCancelled), cancelled.Status)
	assert.NotNil(t, cancelled.CancelledAt)

	_, err = svc.Cancel(context.Background(), created.ID)
	assert.ErrorIs(t, err, ErrCannotCancel)

	_, err = svc.Cancel(context.Background(), uuid.NewString())
	assert.ErrorIs(t, err, ErrBookingNotFound)

	_, err = svc.Cancel(context.Background(), "abc")
	assert.ErrorIs(t, err, ErrInvalidInput)

	// Слот снова свободен
	seed(t, repo, "lin", "2025-06-10", "09:00")

	resp, err := svc.List(context.Background(), &models.ListBookingsRequest{Status: ptr.Ptr("cancelled")})
	require.NoError(t, err)
	assert.Len(t, resp.Bookings, 1)
}

type failingRepo struct{}

func (failingRepo) GetByID(context.Context, string) (*domain.Booking, error) {
	return nil, errors.New("connection refused")
}

func (failingRepo) List(context.Context, domain.BookingsFilter) ([]*domain.Booking, error) {
	return nil, errors.New("connection refused")
}

func (failingRepo) Cancel(context.Context, string) (*domain.Booking, error) {
	return nil, errors.New("connection refused")
}

func TestService_RepositoryErrors(t *testing.T) {
	svc := NewService(failingRepo{}, logger.NewNop())
	ctx := context.Background()

	id := uuid.NewString()

	_, err := svc.GetByID(ctx, id)
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.List(ctx, &models.ListBookingsRequest{})
	assert.ErrorIs(t, err, ErrInternal)

	_, err = svc.Cancel(ctx, id)
	assert.ErrorIs(t, err, ErrInternal)
}
