package mongostore

import "errors"

var (
	// ErrQuery возвращается при ошибке выполнения запроса к MongoDB
	ErrQuery = errors.New("mongostore.repository: query failed")

	// ErrDecode возвращается при ошибке разбора документа
	ErrDecode = errors.New("mongostore.repository: failed to decode document")

	// ErrCustomerNotFound возвращается, когда клиент с таким телефоном не найден
	ErrCustomerNotFound = errors.New("mongostore.repository: customer not found")
)
