package memory

import "errors"

var (
	// ErrUnavailable возвращается, когда контекст запроса уже отменён
	ErrUnavailable = errors.New("memory.repository: storage unavailable")

	// ErrCustomerNotFound возвращается, когда клиент с таким телефоном не найден
	ErrCustomerNotFound = errors.New("memory.repository: customer not found")
)
