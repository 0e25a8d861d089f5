package withdrawal

import "errors"

var (
	// ErrWithdrawalNotFound возвращается, когда выплата не найдена
	ErrWithdrawalNotFound = errors.New("withdrawal.repository: withdrawal not found")

	// ErrVersionConflict возвращается, когда выплата была изменена после чтения
	ErrVersionConflict = errors.New("withdrawal.repository: version conflict")

	ErrBuildQuery = errors.New("withdrawal.repository: failed to build query")
	ErrExecQuery  = errors.New("withdrawal.repository: failed to execute query")
	ErrScanRow    = errors.New("withdrawal.repository: failed to scan row")
)
