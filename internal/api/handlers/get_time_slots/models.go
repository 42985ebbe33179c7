package get_time_slots

import (
	"time"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	getAvailability "github.com/m04kA/SCB-BookingService/internal/usecase/get_availability"
)

// TimeSlotsResponse HTTP response model
type TimeSlotsResponse struct {
	CourtID   int64      `json:"courtId"`
	Date      string     `json:"date"`
	TimeSlots []TimeSlot `json:"timeSlots"`
}

// TimeSlot модель слота с доступностью
type TimeSlot struct {
	StartTime   string `json:"startTime"`
	EndTime     string `json:"endTime"`
	IsAvailable bool   `json:"isAvailable"`
	Reason      string `json:"reason,omitempty"`
}

// ToUseCaseRequest создает запрос use case из параметров URL
func ToUseCaseRequest(courtID int64, dateStr string) (*getAvailability.Request, error) {
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		return nil, err
	}

	return &getAvailability.Request{
		CourtID: courtID,
		Date:    date,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailability.Response) *TimeSlotsResponse {
	slots := make([]TimeSlot, len(resp.Slots))
	for i, sa := range resp.Slots {
		slots[i] = TimeSlot{
			StartTime:   sa.Slot.StartTime.String(),
			EndTime:     sa.Slot.EndTime.String(),
			IsAvailable: sa.IsAvailable,
			Reason:      sa.Reason,
		}
	}

	return &TimeSlotsResponse{
		CourtID:   resp.CourtID,
		Date:      resp.Date.Format(domain.DateFormat),
		TimeSlots: slots,
	}
}
