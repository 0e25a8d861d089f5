package customer

import "errors"

var (
	// ErrCustomerNotFound возвращается, когда клиент не найден
	ErrCustomerNotFound = errors.New("customer.repository: customer not found")

	ErrBuildQuery = errors.New("customer.repository: failed to build query")
	ErrExecQuery  = errors.New("customer.repository: failed to execute query")
	ErrScanRow    = errors.New("customer.repository: failed to scan row")
)
