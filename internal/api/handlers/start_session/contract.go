package start_session

import (
	"context"

	"github.com/m04kA/SMC-SpaBooking/internal/service/sessions/models"
)

type SessionService interface {
	Start(ctx context.Context) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
