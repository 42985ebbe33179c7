package domain

import (
	"time"

	"github.com/m04kA/SCB-BookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending   BookingStatus = "pending"
	StatusConfirmed BookingStatus = "confirmed"
	StatusCancelled BookingStatus = "cancelled"
)

// Booking represents a single-hour court reservation
// Мультислотовый запрос пользователя раскладывается на отдельные записи,
// по одной на каждый час
type Booking struct {
	ID          int64
	UserID      int64
	FacilityID  int64
	CourtID     int64
	BookingDate time.Time // только дата, без времени
	StartTime   types.TimeString
	EndTime     types.TimeString

	// Amount доля общей суммы заказа, приходящаяся на этот час
	// Хранится в минимальных единицах валюты (копейки/центы)
	Amount int64

	Status    BookingStatus
	PaymentID *string // заполняется при подтверждении оплаты

	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsActive returns true if the booking holds its slot (pending or confirmed)
func (b *Booking) IsActive() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// StartDateTime возвращает дату и время начала слота одним time.Time
func (b *Booking) StartDateTime() (time.Time, error) {
	hour, err := b.StartTime.Hour()
	if err != nil {
		return time.Time{}, err
	}
	d := b.BookingDate
	return time.Date(d.Year(), d.Month(), d.Day(), hour, 0, 0, 0, d.Location()), nil
}

// CanBeCancelledAt реализует политику отмены: отменить можно только
// подтвержденное бронирование и строго больше чем за MinCancellationNotice
// до начала слота. Ровно за 2 часа отмена уже запрещена.
func (b *Booking) CanBeCancelledAt(now time.Time) bool {
	if b.Status != StatusConfirmed {
		return false
	}

	start, err := b.StartDateTime()
	if err != nil {
		return false
	}

	return start.Sub(now) > MinCancellationNotice
}
