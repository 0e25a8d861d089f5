package business

import "errors"

var (
	// ErrBusinessNotFound возвращается, когда бизнес не найден
	ErrBusinessNotFound = errors.New("business.repository: business not found")

	// ErrOfferingNotFound возвращается, когда услуга не найдена или удалена
	ErrOfferingNotFound = errors.New("business.repository: offering not found")

	// ErrSignTaken возвращается при нарушении уникальности sign
	ErrSignTaken = errors.New("business.repository: sign already taken")

	// ErrVersionConflict возвращается, когда строка была изменена после чтения
	ErrVersionConflict = errors.New("business.repository: version conflict")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("business.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("business.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("business.repository: failed to scan row")
)
