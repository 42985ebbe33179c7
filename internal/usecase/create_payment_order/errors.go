package create_payment_order

import "errors"

var (
	// ErrBookingNotFound возвращается, когда часть бронирований набора не найдена
	ErrBookingNotFound = errors.New("create_payment_order: booking not found")

	// ErrAccessDenied возвращается, когда бронирование принадлежит другому пользователю
	ErrAccessDenied = errors.New("create_payment_order: access denied")

	// ErrBookingNotPending возвращается, когда бронирование уже не в статусе pending
	ErrBookingNotPending = errors.New("create_payment_order: booking is not pending")

	// ErrAmountMismatch возвращается, когда заявленная сумма не равна сумме бронирований
	ErrAmountMismatch = errors.New("create_payment_order: amount does not match bookings total")

	// ErrPaymentOrder возвращается, когда провайдер не смог создать заказ
	// Бронирования при этом остаются pending, клиент может повторить попытку
	ErrPaymentOrder = errors.New("create_payment_order: failed to create provider order")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_payment_order: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_payment_order: internal error")
)
