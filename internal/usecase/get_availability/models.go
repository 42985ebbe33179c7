package get_availability

import (
	"time"

	"github.com/m04kA/SCB-BookingService/internal/domain"
)

// Request модель запроса расписания слотов корта на дату
type Request struct {
	CourtID int64
	Date    time.Time
}

// Response расписание корта: полный каталог слотов операционного окна
// с отметками доступности
type Response struct {
	CourtID int64
	Date    time.Time
	Slots   []domain.SlotAvailability
}
