package get_available_slots

import "errors"

var (
	// ErrTherapistNotFound возвращается, когда массажист не найден в каталоге
	ErrTherapistNotFound = errors.New("therapist not found")

	// ErrTherapistUnavailable возвращается, когда массажист не принимает записи
	ErrTherapistUnavailable = errors.New("therapist is not available")

	// ErrServiceNotFound возвращается, когда услуга не найдена или не активна
	ErrServiceNotFound = errors.New("service not found")

	// ErrInvalidDate возвращается при некорректной дате или дате в прошлом
	ErrInvalidDate = errors.New("invalid booking date")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("usecase: internal error")
)
