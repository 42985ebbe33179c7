package create_booking

import (
	"time"

	"github.com/m04kA/SCB-BookingService/internal/domain"
)

// SlotInput один запрошенный слот во внешнем представлении
// Клиенты передают либо голый час ("09"), либо пару время-начала/время-конца
// ("09:00"/"10:00"). Оба варианта приводятся к каноничной паре
// функцией normalizeSlots до входа в бизнес-логику
type SlotInput struct {
	StartTime string
	EndTime   string // пустой для формы с голым часом
}

// Request модель запроса на создание бронирования
// Один запрос может охватывать несколько часовых слотов; на каждый час
// создается отдельная pending-запись
type Request struct {
	UserID     int64
	FacilityID int64
	CourtID    int64
	Date       time.Time // дата бронирования (без времени)
	Slots      []SlotInput

	// TotalAmount общая сумма заказа в минимальных единицах валюты;
	// раскладывается поровну между слотами
	TotalAmount int64
}

// Response модель ответа с созданными бронированиями
type Response struct {
	Bookings    []*domain.Booking
	TotalAmount int64
}
