package health

import "context"

// Pinger проверяемая зависимость
type Pinger interface {
	Ping(ctx context.Context) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
