package queue

import (
	"context"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

// TaskEnqueuer постановка задач в очередь (реализуется *asynq.Client)
type TaskEnqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

// CustomerRecorder ставит обновление карточки клиента в очередь вместо записи в БД
type CustomerRecorder struct {
	client   TaskEnqueuer
	queue    string
	maxRetry int
	timeout  time.Duration
}

// NewCustomerRecorder создает рекордер поверх клиента очереди
func NewCustomerRecorder(client TaskEnqueuer, queue string, maxRetry int, timeout time.Duration) *CustomerRecorder {
	return &CustomerRecorder{
		client:   client,
		queue:    queue,
		maxRetry: maxRetry,
		timeout:  timeout,
	}
}

// Record ставит задачу TypeCustomerUpsert в очередь
func (r *CustomerRecorder) Record(ctx context.Context, record *domain.CustomerRecord) error {
	task, err := NewCustomerUpsertTask(record)
	if err != nil {
		return err
	}

	opts := []asynq.Option{asynq.MaxRetry(r.maxRetry)}
	if r.queue != "" {
		opts = append(opts, asynq.Queue(r.queue))
	}
	if r.timeout > 0 {
		opts = append(opts, asynq.Timeout(r.timeout))
	}

	if _, err := r.client.EnqueueContext(ctx, task, opts...); err != nil {
		return fmt.Errorf("%w: Record - phone=%s: %v", ErrEnqueue, record.Phone, err)
	}
	return nil
}
