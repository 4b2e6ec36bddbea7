package queue

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/hibiken/asynq"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
)

// TypeCustomerUpsert задача обновления карточки клиента после бронирования
const TypeCustomerUpsert = "customer:upsert"

// CustomerUpsertPayload содержимое задачи TypeCustomerUpsert
type CustomerUpsertPayload struct {
	Name     string    `json:"name"`
	Phone    string    `json:"phone"`
	Email    string    `json:"email,omitempty"`
	BookedAt time.Time `json:"bookedAt"`
}

// NewCustomerUpsertTask создает задачу по карточке клиента
func NewCustomerUpsertTask(record *domain.CustomerRecord) (*asynq.Task, error) {
	payload, err := json.Marshal(CustomerUpsertPayload{
		Name:     record.Name,
		Phone:    record.Phone,
		Email:    record.Email,
		BookedAt: record.LastBookingAt,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: NewCustomerUpsertTask: %v", ErrPayload, err)
	}
	return asynq.NewTask(TypeCustomerUpsert, payload), nil
}

// ParseCustomerUpsert разбирает задачу в карточку клиента
func ParseCustomerUpsert(task *asynq.Task) (*domain.CustomerRecord, error) {
	var p CustomerUpsertPayload
	if err := json.Unmarshal(task.Payload(), &p); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrPayload, task.Type(), err)
	}
	if p.Phone == "" {
		return nil, fmt.Errorf("%w: %s: phone is empty", ErrPayload, task.Type())
	}

	return &domain.CustomerRecord{
		Name:          p.Name,
		Phone:         p.Phone,
		Email:         p.Email,
		LastBookingAt: p.BookedAt,
	}, nil
}
