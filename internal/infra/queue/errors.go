package queue

import "errors"

var (
	// ErrEnqueue возвращается, когда задачу не удалось поставить в очередь
	ErrEnqueue = errors.New("queue: failed to enqueue task")

	// ErrPayload возвращается при некорректном содержимом задачи
	ErrPayload = errors.New("queue: invalid task payload")

	// ErrHandle возвращается, когда обработчик задачи завершился с ошибкой
	ErrHandle = errors.New("queue: task handler failed")
)
