package queue

import (
	"context"
	"errors"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

// CustomerRepository хранилище карточек клиентов
type CustomerRepository interface {
	Upsert(ctx context.Context, record *domain.CustomerRecord) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Worker обработчик задач очереди
type Worker struct {
	server *asynq.Server
	mux    *asynq.ServeMux
	logger Logger
}

// NewWorker создает воркер и регистрирует обработчики задач
func NewWorker(server *asynq.Server, customers CustomerRepository, logger Logger) *Worker {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TypeCustomerUpsert, HandleCustomerUpsert(customers, logger))

	return &Worker{
		server: server,
		mux:    mux,
		logger: logger,
	}
}

// Start запускает обработку задач в фоне
func (w *Worker) Start() error {
	if err := w.server.Start(w.mux); err != nil {
		return fmt.Errorf("%w: Start: %v", ErrHandle, err)
	}
	w.logger.Info("Queue worker started")
	return nil
}

// Shutdown дожидается текущих задач и останавливает воркер
func (w *Worker) Shutdown() {
	w.server.Shutdown()
	w.logger.Info("Queue worker stopped")
}

// HandleCustomerUpsert обработчик задачи TypeCustomerUpsert.
// Некорректный payload не ретраится.
func HandleCustomerUpsert(customers CustomerRepository, logger Logger) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		record, err := ParseCustomerUpsert(task)
		if err != nil {
			logger.Error("HandleCustomerUpsert: %v", err)
			return errors.Join(err, asynq.SkipRetry)
		}

		if err := customers.Upsert(ctx, record); err != nil {
			logger.Warn("HandleCustomerUpsert: phone=%s: %v", record.Phone, err)
			return fmt.Errorf("%w: phone=%s: %v", ErrHandle, record.Phone, err)
		}

		logger.Info("HandleCustomerUpsert: phone=%s updated", record.Phone)
		return nil
	}
}
