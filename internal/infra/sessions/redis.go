package sessions

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/m04kA/SMC-SpaBooking/internal/wizard"
)

const (
	sessionKeyPrefix = "spa:session:"
	lockKeyPrefix    = "spa:session-lock:"
)

// RedisStore хранит снапшоты мастера в Redis с TTL.
// Каждое сохранение продлевает жизнь сессии.
type RedisStore struct {
	client  *redis.Client
	ttl     time.Duration
	lockTTL time.Duration
}

// NewRedisStore создает хранилище сессий поверх клиента Redis
func NewRedisStore(client *redis.Client, ttl, lockTTL time.Duration) *RedisStore {
	return &RedisStore{
		client:  client,
		ttl:     ttl,
		lockTTL: lockTTL,
	}
}

// Save сохраняет снапшот сессии
func (s *RedisStore) Save(ctx context.Context, id string, snap wizard.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("%w: Save - id=%s: %v", ErrEncode, id, err)
	}

	if err := s.client.Set(ctx, sessionKey(id), data, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - id=%s: %v", ErrStore, id, err)
	}
	return nil
}

// Load читает снапшот сессии
func (s *RedisStore) Load(ctx context.Context, id string) (*wizard.Snapshot, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: id=%s", ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Load - id=%s: %v", ErrStore, id, err)
	}

	var snap wizard.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("%w: Load - id=%s: %v", ErrDecode, id, err)
	}
	return &snap, nil
}

// AcquireSubmitLock берет блокировку отправки для сессии.
// Возвращает false, если блокировка уже занята.
func (s *RedisStore) AcquireSubmitLock(ctx context.Context, id string) (bool, error) {
	ok, err := s.client.SetNX(ctx, lockKey(id), "1", s.lockTTL).Result()
	if err != nil {
		return false, fmt.Errorf("%w: AcquireSubmitLock - id=%s: %v", ErrStore, id, err)
	}
	return ok, nil
}

// ReleaseSubmitLock снимает блокировку отправки
func (s *RedisStore) ReleaseSubmitLock(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, lockKey(id)).Err(); err != nil {
		return fmt.Errorf("%w: ReleaseSubmitLock - id=%s: %v", ErrStore, id, err)
	}
	return nil
}

// IsSubmitLocked сообщает, занята ли блокировка отправки
func (s *RedisStore) IsSubmitLocked(ctx context.Context, id string) (bool, error) {
	n, err := s.client.Exists(ctx, lockKey(id)).Result()
	if err != nil {
		return false, fmt.Errorf("%w: IsSubmitLocked - id=%s: %v", ErrStore, id, err)
	}
	return n > 0, nil
}

// Ping проверяет соединение с Redis
func (s *RedisStore) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: Ping: %v", ErrStore, err)
	}
	return nil
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func lockKey(id string) string {
	return lockKeyPrefix + id
}
