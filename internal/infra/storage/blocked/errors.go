package blocked

import "errors"

var (
	// ErrBlockedNotFound возвращается, когда период не найден
	ErrBlockedNotFound = errors.New("blocked.repository: blocked period not found")

	ErrBuildQuery = errors.New("blocked.repository: failed to build query")
	ErrExecQuery  = errors.New("blocked.repository: failed to execute query")
	ErrScanRow    = errors.New("blocked.repository: failed to scan row")
)
