package order

import "errors"

var (
	// ErrOrderNotFound возвращается, когда заказ не найден
	ErrOrderNotFound = errors.New("order.repository: order not found")

	// ErrSlotTaken возвращается, когда интервал пересекается с другим активным заказом (exclusion constraint)
	ErrSlotTaken = errors.New("order.repository: slot already taken")

	// ErrVersionConflict возвращается, когда заказ был изменён после чтения
	ErrVersionConflict = errors.New("order.repository: version conflict")

	// ErrSerialization возвращается при конфликте сериализуемой транзакции
	ErrSerialization = errors.New("order.repository: serialization failure")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("order.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("order.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("order.repository: failed to scan row")
)
