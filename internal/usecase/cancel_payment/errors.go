package cancel_payment

import "errors"

var (
	// ErrOrderNotFound возвращается, когда платежный заказ не найден
	ErrOrderNotFound = errors.New("cancel_payment: payment order not found")

	// ErrOrderAlreadyPaid возвращается при попытке отменить оплаченный заказ
	ErrOrderAlreadyPaid = errors.New("cancel_payment: payment order is already paid")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_payment: internal error")
)
