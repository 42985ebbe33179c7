package blockedslot

import "errors"

var (
	// ErrBlockedSlotNotFound возвращается, когда блокировка слота не найдена
	ErrBlockedSlotNotFound = errors.New("blockedslot.repository: blocked slot not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("blockedslot.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("blockedslot.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("blockedslot.repository: failed to scan row")
)
