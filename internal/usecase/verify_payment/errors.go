package verify_payment

import "errors"

var (
	// ErrOrderNotFound возвращается, когда платежный заказ не найден
	ErrOrderNotFound = errors.New("verify_payment: payment order not found")

	// ErrInvalidSignature возвращается при невалидной HMAC-подписи callback'а
	// Набор бронирований при этом откатывается, заказ помечается failed
	ErrInvalidSignature = errors.New("verify_payment: invalid payment signature")

	// ErrOrderConflict возвращается, когда заказ уже в терминальном статусе
	// failed или cancelled
	ErrOrderConflict = errors.New("verify_payment: payment order is in terminal status")

	// ErrConfirmConflict возвращается, когда подтвердить весь набор
	// бронирований не удалось (часть уже не pending)
	ErrConfirmConflict = errors.New("verify_payment: bookings could not be confirmed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("verify_payment: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("verify_payment: internal error")
)
