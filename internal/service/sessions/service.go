package sessions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	sessionStore "github.com/m04kA/SMC-SpaBooking/internal/infra/sessions"
	"github.com/m04kA/SMC-SpaBooking/internal/service/sessions/models"
	"github.com/m04kA/SMC-SpaBooking/internal/wizard"
	"github.com/m04kA/SMC-SpaBooking/pkg/metrics"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

// Service сервис сессий мастера бронирования.
// Каждый запрос восстанавливает мастер из снапшота, выполняет одну операцию и сохраняет снапшот обратно.
type Service struct {
	store         SessionStore
	bookingRepo   wizard.BookingRepository
	catalog       wizard.Catalog
	customers     CustomerRecorder
	metrics       Metrics
	timeProvider  TimeProvider
	submitTimeout time.Duration
	logger        Logger
}

// NewService создает новый экземпляр сервиса сессий.
// customers может быть nil - тогда карточки клиентов не ведутся.
func NewService(
	store SessionStore,
	bookingRepo wizard.BookingRepository,
	catalog wizard.Catalog,
	customers CustomerRecorder,
	wizardMetrics Metrics,
	submitTimeout time.Duration,
	logger Logger,
) *Service {
	return &Service{
		store:         store,
		bookingRepo:   bookingRepo,
		catalog:       catalog,
		customers:     customers,
		metrics:       wizardMetrics,
		timeProvider:  &wizard.RealTimeProvider{},
		submitTimeout: submitTimeout,
		logger:        logger,
	}
}

// Start создает новую сессию на шаге выбора услуги
func (s *Service) Start(ctx context.Context) (*models.SessionResponse, error) {
	id := uuid.NewString()
	flow := s.newFlow()

	snap := flow.Snapshot()
	if err := s.store.Save(ctx, id, snap); err != nil {
		s.logger.Error("Start: failed to save session: %v", err)
		return nil, fmt.Errorf("%w: Start - save session: %v", ErrInternal, err)
	}

	s.metrics.ObserveSessionStarted()
	s.logger.Info("Start: session=%s started", id)
	return models.FromSnapshot(id, snap), nil
}

// Get возвращает текущее состояние сессии
func (s *Service) Get(ctx context.Context, id string) (*models.SessionResponse, error) {
	snap, err := s.load(ctx, "Get", id)
	if err != nil {
		return nil, err
	}
	return models.FromSnapshot(id, *snap), nil
}

// SelectService выбирает услугу
func (s *Service) SelectService(ctx context.Context, id, serviceID string) (*models.SessionResponse, error) {
	return s.apply(ctx, "SelectService", id, func(f *wizard.Flow) error {
		return f.SelectService(serviceID)
	})
}

// SelectTherapist выбирает массажиста
func (s *Service) SelectTherapist(ctx context.Context, id, therapistID string) (*models.SessionResponse, error) {
	return s.apply(ctx, "SelectTherapist", id, func(f *wizard.Flow) error {
		return f.SelectTherapist(therapistID)
	})
}

// SelectDateTime выбирает дату и время
func (s *Service) SelectDateTime(ctx context.Context, id, date, t string) (*models.SessionResponse, error) {
	return s.apply(ctx, "SelectDateTime", id, func(f *wizard.Flow) error {
		return f.SelectDateTime(types.Date(date), types.TimeString(t))
	})
}

// SetCustomer задает контакты клиента; nil поля не меняются
func (s *Service) SetCustomer(ctx context.Context, id string, patch *models.CustomerPatch) (*models.SessionResponse, error) {
	return s.apply(ctx, "SetCustomer", id, func(f *wizard.Flow) error {
		return setCustomerFields(f, patch)
	})
}

// UpdateDraft применяет частичное обновление черновика одной операцией
func (s *Service) UpdateDraft(ctx context.Context, id string, req *models.UpdateDraftRequest) (*models.SessionResponse, error) {
	if req == nil || req.IsEmpty() {
		return nil, fmt.Errorf("%w: nothing to update", ErrInvalidInput)
	}

	return s.apply(ctx, "UpdateDraft", id, func(f *wizard.Flow) error {
		if req.ServiceID != nil {
			if err := f.SelectService(*req.ServiceID); err != nil {
				return err
			}
		}
		if req.TherapistID != nil {
			if err := f.SelectTherapist(*req.TherapistID); err != nil {
				return err
			}
		}
		if req.Date != nil || req.Time != nil {
			date, t := req.DateTime(f.Draft())
			if err := f.SelectDateTime(date, t); err != nil {
				return err
			}
		}
		return setCustomerFields(f, req.Customer)
	})
}

// Advance переходит на следующий шаг, если текущий шаг заполнен
func (s *Service) Advance(ctx context.Context, id string) (*models.SessionResponse, error) {
	return s.apply(ctx, "Advance", id, func(f *wizard.Flow) error {
		from := f.State()
		err := f.Advance()
		s.metrics.ObserveTransition(from.String(), f.State().String(), err == nil)
		return err
	})
}

// Retreat возвращается на предыдущий шаг, сохраняя введенные данные
func (s *Service) Retreat(ctx context.Context, id string) (*models.SessionResponse, error) {
	return s.apply(ctx, "Retreat", id, func(f *wizard.Flow) error {
		from := f.State()
		err := f.Retreat()
		s.metrics.ObserveTransition(from.String(), f.State().String(), err == nil)
		return err
	})
}

// Reset очищает черновик и возвращает мастер на первый шаг
func (s *Service) Reset(ctx context.Context, id string) (*models.SessionResponse, error) {
	return s.apply(ctx, "Reset", id, func(f *wizard.Flow) error {
		from := f.State()
		err := f.Reset()
		s.metrics.ObserveTransition(from.String(), f.State().String(), err == nil)
		return err
	})
}

// Submit подтверждает бронирование.
// Повторная отправка той же сессии, пока первая не завершилась, возвращает wizard.ErrBusy.
// При конфликте слота сессия сохраняется на шаге выбора даты и времени.
func (s *Service) Submit(ctx context.Context, id string) (*models.SessionResponse, error) {
	s.logger.Info("Submit: session=%s", id)

	// 1. Блокировка отправки для сессии
	acquired, err := s.store.AcquireSubmitLock(ctx, id)
	if err != nil {
		s.logger.Error("Submit: failed to acquire submit lock, session=%s: %v", id, err)
		return nil, fmt.Errorf("%w: Submit - acquire lock: %v", ErrInternal, err)
	}
	if !acquired {
		s.logger.Warn("Submit: session=%s already submitting", id)
		s.metrics.ObserveSubmission(metrics.SubmitResultBusy)
		return nil, wizard.ErrBusy
	}
	defer func() {
		if err := s.store.ReleaseSubmitLock(context.WithoutCancel(ctx), id); err != nil {
			s.logger.Warn("Submit: failed to release submit lock, session=%s: %v", id, err)
		}
	}()

	// 2. Восстанавливаем мастер
	flow, err := s.restore(ctx, "Submit", id)
	if err != nil {
		return nil, err
	}

	// 3. Отправка с таймаутом
	from := flow.State()
	submitCtx, cancel := context.WithTimeout(ctx, s.submitTimeout)
	booking, submitErr := flow.Submit(submitCtx)
	cancel()

	s.metrics.ObserveSubmission(submitResult(submitErr))
	s.metrics.ObserveTransition(from.String(), flow.State().String(), submitErr == nil)

	// 4. Сохраняем состояние, если оно изменилось.
	// Бронирование уже создано, поэтому ошибка сохранения сессии только логируется.
	snap := flow.Snapshot()
	if submitErr == nil || errors.Is(submitErr, wizard.ErrSlotConflict) {
		if err := s.store.Save(context.WithoutCancel(ctx), id, snap); err != nil {
			s.logger.Error("Submit: failed to save session=%s: %v", id, err)
		}
	}
	if submitErr != nil {
		s.logger.Warn("Submit: session=%s rejected: %v", id, submitErr)
		return nil, submitErr
	}

	// 5. Карточка клиента (ошибка не влияет на бронирование)
	s.recordCustomer(ctx, booking)

	s.logger.Info("Submit: session=%s confirmed booking id=%s", id, booking.ID)
	return models.FromSnapshot(id, snap), nil
}

// apply загружает сессию, применяет fn и сохраняет результат.
// Пока для сессии идет отправка, изменения отклоняются с wizard.ErrBusy.
func (s *Service) apply(ctx context.Context, op, id string, fn func(f *wizard.Flow) error) (*models.SessionResponse, error) {
	if err := s.ensureNotSubmitting(ctx, op, id); err != nil {
		return nil, err
	}

	flow, err := s.restore(ctx, op, id)
	if err != nil {
		return nil, err
	}

	if err := fn(flow); err != nil {
		s.logger.Warn("%s: session=%s rejected: %v", op, id, err)
		return nil, err
	}

	// Отправка могла начаться, пока применялось изменение
	if err := s.ensureNotSubmitting(ctx, op, id); err != nil {
		return nil, err
	}

	snap := flow.Snapshot()
	if err := s.store.Save(ctx, id, snap); err != nil {
		s.logger.Error("%s: failed to save session=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - save session: %v", ErrInternal, op, err)
	}
	return models.FromSnapshot(id, snap), nil
}

func (s *Service) ensureNotSubmitting(ctx context.Context, op, id string) error {
	locked, err := s.store.IsSubmitLocked(ctx, id)
	if err != nil {
		s.logger.Error("%s: failed to check submit lock, session=%s: %v", op, id, err)
		return fmt.Errorf("%w: %s - check submit lock: %v", ErrInternal, op, err)
	}
	if locked {
		s.logger.Warn("%s: session=%s is being submitted", op, id)
		return wizard.ErrBusy
	}
	return nil
}

func (s *Service) restore(ctx context.Context, op, id string) (*wizard.Flow, error) {
	snap, err := s.load(ctx, op, id)
	if err != nil {
		return nil, err
	}

	flow := s.newFlow()
	if err := flow.Restore(*snap); err != nil {
		s.logger.Error("%s: corrupted session=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - restore session: %v", ErrInternal, op, err)
	}
	return flow, nil
}

func (s *Service) load(ctx context.Context, op, id string) (*wizard.Snapshot, error) {
	snap, err := s.store.Load(ctx, id)
	if err != nil {
		if errors.Is(err, sessionStore.ErrSessionNotFound) {
			s.logger.Warn("%s: session=%s not found", op, id)
			return nil, ErrSessionNotFound
		}
		s.logger.Error("%s: failed to load session=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - load session: %v", ErrInternal, op, err)
	}
	return snap, nil
}

func (s *Service) newFlow() *wizard.Flow {
	return wizard.NewFlow(s.bookingRepo, s.catalog, s.timeProvider, s.logger)
}

func (s *Service) recordCustomer(ctx context.Context, booking *domain.Booking) {
	if s.customers == nil {
		return
	}

	record := &domain.CustomerRecord{
		Name:          booking.Customer.Name,
		Phone:         booking.Customer.Phone,
		Email:         booking.Customer.Email,
		LastBookingAt: booking.CreatedAt,
	}
	if err := s.customers.Record(context.WithoutCancel(ctx), record); err != nil {
		s.logger.Warn("Submit: failed to record customer phone=%s for booking id=%s: %v",
			record.Phone, booking.ID, err)
	}
}

func setCustomerFields(f *wizard.Flow, patch *models.CustomerPatch) error {
	for _, fv := range patch.CustomerFields() {
		if err := f.SetCustomerField(fv.Field, fv.Value); err != nil {
			return err
		}
	}
	return nil
}

func submitResult(err error) string {
	switch {
	case err == nil:
		return metrics.SubmitResultConfirmed
	case errors.Is(err, wizard.ErrSlotConflict):
		return metrics.SubmitResultConflict
	case errors.Is(err, wizard.ErrValidation):
		return metrics.SubmitResultValidation
	case errors.Is(err, wizard.ErrBusy):
		return metrics.SubmitResultBusy
	case errors.Is(err, wizard.ErrInvalidState):
		return metrics.SubmitResultInvalidState
	default:
		return metrics.SubmitResultStorageError
	}
}
