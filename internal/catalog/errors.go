package catalog

import "errors"

var (
	// ErrInvalidCatalog возвращается, когда каталог не проходит проверку целостности
	ErrInvalidCatalog = errors.New("catalog: invalid catalog")

	// ErrReadFile возвращается при ошибке чтения файла каталога
	ErrReadFile = errors.New("catalog: failed to read file")
)
