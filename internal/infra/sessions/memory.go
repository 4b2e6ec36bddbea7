package sessions

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-SpaBooking/internal/wizard"
)

// TimeProvider источник текущего времени для истечения сессий
type TimeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time { return time.Now() }

type memoryEntry struct {
	data      []byte
	expiresAt time.Time
}

// MemoryStore хранилище сессий в памяти процесса.
// Снапшоты хранятся в JSON, как и в Redis, чтобы вызывающий не мог изменить сохраненное состояние.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]memoryEntry
	locks    map[string]time.Time
	ttl      time.Duration
	lockTTL  time.Duration
	clock    TimeProvider
}

// NewMemoryStore создает хранилище сессий в памяти; nil clock - системное время
func NewMemoryStore(ttl, lockTTL time.Duration, clock TimeProvider) *MemoryStore {
	if clock == nil {
		clock = realTimeProvider{}
	}
	return &MemoryStore{
		sessions: make(map[string]memoryEntry),
		locks:    make(map[string]time.Time),
		ttl:      ttl,
		lockTTL:  lockTTL,
		clock:    clock,
	}
}

// Save сохраняет снапшот сессии
func (s *MemoryStore) Save(ctx context.Context, id string, snap wizard.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: Save - id=%s: %v", ErrStore, id, err)
	}

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%w: Save - id=%s: %v", ErrEncode, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[id] = memoryEntry{data: data, expiresAt: s.clock.Now().Add(s.ttl)}
	return nil
}

// Load читает снапшот сессии; истекшие сессии удаляются при обращении
func (s *MemoryStore) Load(ctx context.Context, id string) (*wizard.Snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: Load - id=%s: %v", ErrStore, id, err)
	}

	s.mu.Lock()
	entry, ok := s.sessions[id]
	if ok && !s.clock.Now().Before(entry.expiresAt) {
		delete(s.sessions, id)
		ok = false
	}
	s.mu.Unlock()

	if !ok {
		return nil, fmt.Errorf("%w: id=%s", ErrSessionNotFound, id)
	}

	var snap wizard.Snapshot
	if err := json.Unmarshal(entry.data, &snap); err != nil {
		return nil, fmt.Errorf("%w: Load - id=%s: %v", ErrDecode, id, err)
	}
	return &snap, nil
}

// AcquireSubmitLock берет блокировку отправки; просроченная блокировка считается свободной
func (s *MemoryStore) AcquireSubmitLock(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%w: AcquireSubmitLock - id=%s: %v", ErrStore, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock.Now()
	if expiresAt, held := s.locks[id]; held && now.Before(expiresAt) {
		return false, nil
	}
	s.locks[id] = now.Add(s.lockTTL)
	return true, nil
}

// ReleaseSubmitLock снимает блокировку отправки
func (s *MemoryStore) ReleaseSubmitLock(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.locks, id)
	return nil
}

// IsSubmitLocked сообщает, занята ли блокировка отправки
func (s *MemoryStore) IsSubmitLocked(ctx context.Context, id string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("%w: IsSubmitLocked - id=%s: %v", ErrStore, id, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	expiresAt, held := s.locks[id]
	return held && s.clock.Now().Before(expiresAt), nil
}

// Ping всегда успешен
func (s *MemoryStore) Ping(_ context.Context) error {
	return nil
}
