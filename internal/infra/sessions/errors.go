package sessions

import "errors"

var (
	// ErrSessionNotFound возвращается, когда сессия не найдена или истекла
	ErrSessionNotFound = errors.New("sessions: session not found")

	// ErrEncode возвращается при ошибке сериализации снапшота
	ErrEncode = errors.New("sessions: failed to encode snapshot")

	// ErrDecode возвращается при ошибке десериализации снапшота
	ErrDecode = errors.New("sessions: failed to decode snapshot")

	// ErrStore возвращается при ошибке хранилища
	ErrStore = errors.New("sessions: store error")
)
