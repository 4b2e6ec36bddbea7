package sessions

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/internal/wizard"
)

type manualClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *manualClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *manualClock) advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newClock() *manualClock {
	return &manualClock{now: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
}

func TestMemoryStore_SaveLoad(t *testing.T) {
	store := NewMemoryStore(time.Minute, time.Second, newClock())
	ctx := context.Background()

	snap := wizard.Snapshot{
		State: wizard.TherapistSelection,
		Draft: domain.Draft{ServiceID: "swedish"},
	}
	require.NoError(t, store.Save(ctx, "s1", snap))

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, snap, *loaded)

	// Изменение загруженного снапшота не влияет на сохраненный
	loaded.Draft.ServiceID = "hot-stone"
	again, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, "swedish", again.Draft.ServiceID)
}

func TestMemoryStore_ConfirmedRoundTrip(t *testing.T) {
	store := NewMemoryStore(time.Minute, time.Second, newClock())
	ctx := context.Background()

	snap := wizard.Snapshot{
		State: wizard.Confirmation,
		Draft: domain.Draft{ServiceID: "swedish", TherapistID: "lin", Date: "2025-06-10", Time: "09:00"},
		Confirmed: &domain.Booking{
			ID:           "b-1",
			ServiceID:    "swedish",
			TherapistID:  "lin",
			Date:         "2025-06-10",
			Time:         "09:00",
			Status:       domain.StatusConfirmed,
			ServicePrice: decimal.RequireFromString("2200"),
			CreatedAt:    time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
		},
	}
	require.NoError(t, store.Save(ctx, "s1", snap))

	loaded, err := store.Load(ctx, "s1")
	require.NoError(t, err)
	require.NotNil(t, loaded.Confirmed)
	assert.Equal(t, "b-1", loaded.Confirmed.ID)
	assert.True(t, snap.Confirmed.ServicePrice.Equal(loaded.Confirmed.ServicePrice))
	assert.True(t, snap.Confirmed.CreatedAt.Equal(loaded.Confirmed.CreatedAt))
}

func TestMemoryStore_NotFoundAndExpiry(t *testing.T) {
	clock := newClock()
	store := NewMemoryStore(time.Minute, time.Second, clock)
	ctx := context.Background()

	_, err := store.Load(ctx, "missing")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	require.NoError(t, store.Save(ctx, "s1", wizard.Snapshot{State: wizard.ServiceSelection}))

	clock.advance(59 * time.Second)
	_, err = store.Load(ctx, "s1")
	require.NoError(t, err)

	clock.advance(time.Second)
	_, err = store.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestMemoryStore_SaveExtendsTTL(t *testing.T) {
	clock := newClock()
	store := NewMemoryStore(time.Minute, time.Second, clock)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, "s1", wizard.Snapshot{}))
	clock.advance(50 * time.Second)
	require.NoError(t, store.Save(ctx, "s1", wizard.Snapshot{}))
	clock.advance(50 * time.Second)

	_, err := store.Load(ctx, "s1")
	assert.NoError(t, err)
}

func TestMemoryStore_SubmitLock(t *testing.T) {
	clock := newClock()
	store := NewMemoryStore(time.Minute, 15*time.Second, clock)
	ctx := context.Background()

	ok, err := store.AcquireSubmitLock(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.AcquireSubmitLock(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, ok)

	// Другая сессия не блокируется
	ok, err = store.AcquireSubmitLock(ctx, "s2")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.ReleaseSubmitLock(ctx, "s1"))
	ok, err = store.AcquireSubmitLock(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)

	// Просроченная блокировка освобождается сама
	clock.advance(15 * time.Second)
	ok, err = store.AcquireSubmitLock(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestMemoryStore_IsSubmitLocked(t *testing.T) {
	clock := newClock()
	store := NewMemoryStore(time.Minute, 15*time.Second, clock)
	ctx := context.Background()

	locked, err := store.IsSubmitLocked(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, locked)

	ok, err := store.AcquireSubmitLock(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)

	locked, err = store.IsSubmitLocked(ctx, "s1")
	require.NoError(t, err)
	assert.True(t, locked)

	locked, err = store.IsSubmitLocked(ctx, "s2")
	require.NoError(t, err)
	assert.False(t, locked)

	clock.advance(15 * time.Second)
	locked, err = store.IsSubmitLocked(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, locked)

	ok, err = store.AcquireSubmitLock(ctx, "s1")
	require.NoError(t, err)
	require.True(t, ok)
	require.NoError(t, store.ReleaseSubmitLock(ctx, "s1"))

	locked, err = store.IsSubmitLocked(ctx, "s1")
	require.NoError(t, err)
	assert.False(t, locked)
}

func TestMemoryStore_SubmitLockSingleWinner(t *testing.T) {
	store := NewMemoryStore(time.Minute, time.Minute, nil)
	ctx := context.Background()

	const workers = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.AcquireSubmitLock(ctx, "s1")
			if err == nil && ok {
				mu.Lock()
				wins++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, wins)
}

func TestMemoryStore_CancelledContext(t *testing.T) {
	store := NewMemoryStore(time.Minute, time.Second, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Save(ctx, "s1", wizard.Snapshot{}), ErrStore)
	_, err := store.Load(ctx, "s1")
	assert.ErrorIs(t, err, ErrStore)
}

func TestRedisKeys(t *testing.T) {
	assert.Equal(t, "spa:session:abc", sessionKey("abc"))
	assert.Equal(t, "spa:session-lock:abc", lockKey("abc"))
}
