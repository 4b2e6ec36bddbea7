package sessions

import (
	"context"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

// DirectCustomerRecorder пишет карточку клиента сразу в хранилище, без очереди
type DirectCustomerRecorder struct {
	repo CustomerRepository
}

// NewDirectCustomerRecorder создает рекордер поверх репозитория клиентов
func NewDirectCustomerRecorder(repo CustomerRepository) *DirectCustomerRecorder {
	return &DirectCustomerRecorder{repo: repo}
}

// Record сохраняет карточку клиента
func (r *DirectCustomerRecorder) Record(ctx context.Context, record *domain.CustomerRecord) error {
	return r.repo.Upsert(ctx, record)
}
