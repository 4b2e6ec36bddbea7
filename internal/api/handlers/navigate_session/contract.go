package navigate_session

import (
	"context"

	"github.com/m04kA/SMC-SpaBooking/internal/service/sessions/models"
)

type SessionService interface {
	Advance(ctx context.Context, id string) (*models.SessionResponse, error)
	Retreat(ctx context.Context, id string) (*models.SessionResponse, error)
	Reset(ctx context.Context, id string) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
