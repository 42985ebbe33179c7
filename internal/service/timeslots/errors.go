package timeslots

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не найден
	ErrCourtNotFound = errors.New("court not found")

	// ErrBlockedSlotNotFound возвращается, когда блокировка не найдена
	ErrBlockedSlotNotFound = errors.New("blocked slot not found")

	// ErrAccessDenied возвращается, когда пользователь не владелец площадки
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrSlotOutsideWindow возвращается, когда блокируемый слот вне
	// операционного окна корта
	ErrSlotOutsideWindow = errors.New("slot is outside the court operating window")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
