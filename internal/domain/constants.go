package domain

import "time"

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// Default court operating window (whole hours)
const (
	DefaultOpenHour  = 6  // 06:00
	DefaultCloseHour = 22 // 22:00
)

// Business rule constants
const (
	// MinCancellationNotice минимальное время до начала слота, при котором
	// подтвержденное бронирование еще можно отменить (строго больше)
	MinCancellationNotice = 2 * time.Hour

	// SlotDurationMinutes длительность одного слота; корты бронируются по часам
	SlotDurationMinutes = 60
)

// Причины недоступности слота в выдаче доступности
// Если слот одновременно забронирован и заблокирован владельцем,
// показывается ReasonBooked (проверка бронирований идет первой)
const (
	ReasonBooked      = "Booked"
	ReasonMaintenance = "Maintenance"
)

// ActiveStatuses статусы бронирований, удерживающих слот
// Используется при проверке конфликтов и в выдаче доступности
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
}
