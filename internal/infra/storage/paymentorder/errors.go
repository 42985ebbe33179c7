package paymentorder

import "errors"

var (
	// ErrOrderNotFound возвращается, когда платежный заказ не найден
	ErrOrderNotFound = errors.New("paymentorder.repository: payment order not found")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("paymentorder.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("paymentorder.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("paymentorder.repository: failed to scan row")
)
