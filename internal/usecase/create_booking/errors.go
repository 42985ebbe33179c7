package create_booking

import "errors"

var (
	// ErrCourtNotFound возвращается, когда корт не найден или не принадлежит
	// указанной площадке
	ErrCourtNotFound = errors.New("create_booking: court not found")

	// ErrCourtInactive возвращается, когда корт отключен владельцем
	ErrCourtInactive = errors.New("create_booking: court is not active")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrSlotNotAvailable возвращается, когда хотя бы один из запрошенных
	// слотов уже удержан активным бронированием
	ErrSlotNotAvailable = errors.New("create_booking: slot is not available")

	// ErrSlotOutsideWindow возвращается, когда запрошенный слот вне
	// операционного окна корта
	ErrSlotOutsideWindow = errors.New("create_booking: slot is outside the court operating window")

	// ErrInvalidSlot возвращается при некорректном формате слота
	// (не целый час, end != start + 1 час, дубликаты)
	ErrInvalidSlot = errors.New("create_booking: invalid time slot")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
