package get_catalog

import (
	"github.com/m04kA/SMC-SpaBooking/internal/domain"
	"github.com/m04kA/SMC-SpaBooking/pkg/types"
)

type Catalog interface {
	ActiveServices() []domain.Service
	Therapists() []domain.Therapist
	TimeSlots() []types.TimeString
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
