package get_available_slots

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/ptr"
)

// UseCase use case для получения слотов массажиста на дату
type UseCase struct {
	bookingRepo  BookingRepository
	catalog      Catalog
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	catalog Catalog,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:  bookingRepo,
		catalog:      catalog,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: therapist=%s, service=%s, date=%s",
		req.TherapistID, req.ServiceID, req.Date)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Получаем массажиста
	therapist, ok := uc.catalog.Therapist(req.TherapistID)
	if !ok {
		uc.logger.Warn("GetAvailableSlots: therapist id=%s not found", req.TherapistID)
		return nil, ErrTherapistNotFound
	}
	if !therapist.IsAvailable {
		uc.logger.Warn("GetAvailableSlots: therapist id=%s is not available", req.TherapistID)
		return nil, ErrTherapistUnavailable
	}

	// 4. Получаем услугу, если указана
	durationMinutes := 0
	if req.ServiceID != "" {
		service, ok := uc.catalog.Service(req.ServiceID)
		if !ok || !service.IsActive {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found or inactive", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		durationMinutes = service.DurationMinutes
	}

	// 5. Дата не в прошлом
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("GetAvailableSlots: date validation failed: %v", err)
		return nil, err
	}

	// 6. Слоты в рабочие часы массажиста
	weekday, err := req.Date.Weekday()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDate, err)
	}
	timeSlots := workingSlots(therapist, weekday, uc.catalog.TimeSlots())

	response := &Response{
		Date:            req.Date,
		TherapistID:     therapist.ID,
		TherapistName:   therapist.Name,
		ServiceID:       req.ServiceID,
		DurationMinutes: durationMinutes,
		Slots:           []Slot{},
	}

	if len(timeSlots) == 0 {
		uc.logger.Info("GetAvailableSlots: therapist=%s does not work on %s", therapist.ID, req.Date)
		return response, nil
	}

	// 7. Подтверждённые бронирования массажиста на эту дату
	bookings, err := uc.bookingRepo.List(ctx, domain.BookingsFilter{
		Date:        ptr.Ptr(req.Date),
		TherapistID: ptr.Ptr(therapist.ID),
		Status:      ptr.Ptr(domain.StatusConfirmed),
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 8. Доступность каждого слота
	response.Slots = markAvailability(bookings, req.Date, therapist.ID, timeSlots)

	uc.logger.Info("GetAvailableSlots: generated %d slots for therapist=%s, date=%s",
		len(response.Slots), therapist.ID, req.Date)

	return response, nil
}
