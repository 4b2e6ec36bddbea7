package config

import "errors"

var (
	// ErrReadConfig возвращается при ошибке чтения или разбора файла
	ErrReadConfig = errors.New("config: failed to read config")

	// ErrInvalidConfig возвращается при некорректных значениях
	ErrInvalidConfig = errors.New("config: invalid config")
)
