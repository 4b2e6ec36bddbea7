package update_draft

import (
	"context"

	"github.com/m04kA/SMC-SpaBooking/internal/service/sessions/models"
)

type SessionService interface {
	UpdateDraft(ctx context.Context, id string, req *models.UpdateDraftRequest) (*models.SessionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
