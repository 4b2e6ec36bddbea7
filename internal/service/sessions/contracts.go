package sessions

import (
	"context"
	"time"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/internal/wizard"
)

// SessionStore хранилище снапшотов мастера между запросами
type SessionStore interface {
	Save(ctx context.Context, id string, snap wizard.Snapshot) error
	Load(ctx context.Context, id string) (*wizard.Snapshot, error)
	AcquireSubmitLock(ctx context.Context, id string) (bool, error)
	ReleaseSubmitLock(ctx context.Context, id string) error
	IsSubmitLocked(ctx context.Context, id string) (bool, error)
}

// CustomerRecorder сохраняет карточку клиента после подтверждения (best-effort)
type CustomerRecorder interface {
	Record(ctx context.Context, record *domain.CustomerRecord) error
}

// CustomerRepository хранилище карточек клиентов
type CustomerRepository interface {
	Upsert(ctx context.Context, record *domain.CustomerRecord) error
}

// Metrics метрики мастера
type Metrics interface {
	ObserveTransition(from, to string, ok bool)
	ObserveSubmission(result string)
	ObserveSessionStarted()
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
