package block_slot

import (
	"time"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	"github.com/m04kA/SCB-BookingService/internal/service/timeslots/models"
	"github.com/m04kA/SCB-BookingService/pkg/types"
)

// BlockSlotRequest HTTP request model
type BlockSlotRequest struct {
	CourtID   int64  `json:"courtId"`
	Date      string `json:"date"`      // "2026-09-01"
	StartTime string `json:"startTime"` // "14:00"
	EndTime   string `json:"endTime"`   // "15:00"
	Reason    string `json:"reason"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *BlockSlotRequest) ToServiceRequest(userID int64) (*models.BlockSlotRequest, error) {
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	endTime, err := types.NewTimeStringFromString(r.EndTime)
	if err != nil {
		return nil, err
	}

	return &models.BlockSlotRequest{
		UserID:    userID,
		CourtID:   r.CourtID,
		BlockDate: date,
		StartTime: startTime,
		EndTime:   endTime,
		Reason:    r.Reason,
	}, nil
}
