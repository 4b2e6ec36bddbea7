package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/ptr"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

var clock = fixedClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}

func newBooking(date types.Date, t types.TimeString, therapistID string) *domain.Booking {
	return &domain.Booking{
		ServiceID:   "swedish",
		TherapistID: therapistID,
		Date:        date,
		Time:        t,
		Customer:    domain.Customer{Name: "Wang", Phone: "0912345678"},
		Status:      domain.StatusConfirmed,
	}
}

func TestBookingRepository_CreateAssignsIDAndTime(t *testing.T) {
	repo := NewBookingRepository(clock)

	in := newBooking("2025-06-10", "09:00", "lin")
	created, err := repo.Create(context.Background(), in)
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, clock.now, created.CreatedAt)
	assert.Empty(t, in.ID, "input must not be mutated")

	got, err := repo.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestBookingRepository_SlotUniqueness(t *testing.T) {
	repo := NewBookingRepository(clock)
	ctx := context.Background()

	first, err := repo.Create(ctx, newBooking("2025-06-10", "09:00", "lin"))
	require.NoError(t, err)

	_, err = repo.Create(ctx, newBooking("2025-06-10", "09:00", "lin"))
	assert.ErrorIs(t, err, domain.ErrSlotTaken)

	_, err = repo.Create(ctx, newBooking("2025-06-10", "09:00", "chen"))
	assert.NoError(t, err)

	_, err = repo.Cancel(ctx, first.ID)
	require.NoError(t, err)

	_, err = repo.Create(ctx, newBooking("2025-06-10", "09:00", "lin"))
	assert.NoError(t, err, "cancelled booking frees the slot")
}

func TestBookingRepository_ConcurrentCreateOnlyOneWins(t *testing.T) {
	repo := NewBookingRepository(clock)

	const workers = 16
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := repo.Create(context.Background(), newBooking("2025-06-10", "12:00", "chang")); err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
}

func TestBookingRepository_List(t *testing.T) {
	repo := NewBookingRepository(clock)
	ctx := context.Background()

	for _, b := range []*domain.Booking{
		newBooking("2025-06-10", "12:00", "lin"),
		newBooking("2025-06-10", "09:00", "lin"),
		newBooking("2025-06-11", "09:00", "lin"),
		newBooking("2025-06-10", "09:00", "chen"),
	} {
		_, err := repo.Create(ctx, b)
		require.NoError(t, err)
	}
	cancelled, err := repo.Create(ctx, newBooking("2025-06-10", "15:00", "lin"))
	require.NoError(t, err)
	_, err = repo.Cancel(ctx, cancelled.ID)
	require.NoError(t, err)

	date := types.Date("2025-06-10")
	got, err := repo.List(ctx, domain.BookingsFilter{Date: &date, TherapistID: ptr.Ptr("lin")})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, types.TimeString("09:00"), got[0].Time)
	assert.Equal(t, types.TimeString("12:00"), got[1].Time)

	all, err := repo.List(ctx, domain.BookingsFilter{IncludeCancelled: true})
	require.NoError(t, err)
	assert.Len(t, all, 5)
	assert.Equal(t, types.Date("2025-06-11"), all[0].Date)
}

func TestBookingRepository_Cancel(t *testing.T) {
	repo := NewBookingRepository(clock)
	ctx := context.Background()

	created, err := repo.Create(ctx, newBooking("2025-06-10", "09:00", "lin"))
	require.NoError(t, err)

	cancelled, err := repo.Cancel(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, cancelled.Status)
	require.NotNil(t, cancelled.CancelledAt)

	_, err = repo.Cancel(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrBookingNotCancellable)

	_, err = repo.Cancel(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrBookingNotFound)
}

func TestBookingRepository_CancelledContext(t *testing.T) {
	repo := NewBookingRepository(clock)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.Create(ctx, newBooking("2025-06-10", "09:00", "lin"))
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Error(t, repo.Ping(ctx))
}

func TestCustomerRepository_Upsert(t *testing.T) {
	repo := NewCustomerRepository()
	ctx := context.Background()

	first := clock.now
	require.NoError(t, repo.Upsert(ctx, &domain.CustomerRecord{
		Name: "Wang", Phone: "0912345678", Email: "wang@example.com", LastBookingAt: first,
	}))
	require.NoError(t, repo.Upsert(ctx, &domain.CustomerRecord{
		Name: "Wang Xiao", Phone: "0912345678", LastBookingAt: first.Add(time.Hour),
	}))

	rec, err := repo.GetByPhone(ctx, "0912345678")
	require.NoError(t, err)
	assert.Equal(t, "Wang Xiao", rec.Name)
	assert.Equal(t, "wang@example.com", rec.Email)
	assert.Equal(t, 2, rec.TotalBookings)
	assert.Equal(t, first.Add(time.Hour), rec.LastBookingAt)

	_, err = repo.GetByPhone(ctx, "000")
	assert.ErrorIs(t, err, ErrCustomerNotFound)
}
