package domain

import (
	"fmt"

	"github.com/m04kA/SCB-BookingService/pkg/types"
)

// Slot одно часовое окно бронирования для корта на конкретную дату
// Не хранится в БД, вычисляется по операционному окну корта
type Slot struct {
	StartTime types.TimeString
	EndTime   types.TimeString
}

// SlotAvailability слот вместе с его текущей доступностью
type SlotAvailability struct {
	Slot        Slot
	IsAvailable bool

	// Reason причина недоступности: ReasonBooked или ReasonMaintenance
	// Пустая строка для доступного слота
	Reason string
}

// GenerateSlots генерирует базовую сетку часовых слотов операционного окна
// [openHour, closeHour). Для окна 06..22 вернет 16 слотов.
// Детерминированная функция без I/O
func GenerateSlots(openHour, closeHour int) []Slot {
	if openHour < 0 || closeHour > 24 || openHour >= closeHour {
		return []Slot{}
	}

	slots := make([]Slot, 0, closeHour-openHour)
	for hour := openHour; hour < closeHour; hour++ {
		slots = append(slots, Slot{
			StartTime: types.TimeString(fmt.Sprintf("%02d:00", hour)),
			EndTime:   types.TimeString(fmt.Sprintf("%02d:00", hour+1)),
		})
	}

	return slots
}
