package bookings

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("booking not found")

	// ErrAccessDenied возвращается, когда у пользователя нет прав доступа
	ErrAccessDenied = errors.New("access denied")

	// ErrCannotCancel возвращается, когда бронирование не в статусе,
	// допускающем пользовательскую отмену
	ErrCannotCancel = errors.New("booking cannot be cancelled")

	// ErrCancellationWindowExpired возвращается, когда до начала слота
	// осталось меньше либо ровно минимальное время отмены
	ErrCancellationWindowExpired = errors.New("cancellation window expired")

	// ErrConfirmConflict возвращается, когда не все бронирования набора
	// удалось подтвердить (чужие, не pending или не существуют) -
	// транзакция откатывается целиком
	ErrConfirmConflict = errors.New("bookings cannot be confirmed atomically")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
