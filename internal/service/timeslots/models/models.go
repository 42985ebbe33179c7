package models

import (
	"time"

	"github.com/m04kA/SCB-BookingService/internal/domain"
	"github.com/m04kA/SCB-BookingService/pkg/types"
)

// BlockSlotRequest запрос владельца на блокировку слота
type BlockSlotRequest struct {
	UserID    int64
	CourtID   int64
	BlockDate time.Time
	StartTime types.TimeString
	EndTime   types.TimeString
	Reason    string
}

// UnblockSlotRequest запрос владельца на снятие блокировки
type UnblockSlotRequest struct {
	UserID        int64
	BlockedSlotID int64
}

// BlockedSlotResponse ответ с данными блокировки
type BlockedSlotResponse struct {
	ID         int64  `json:"id"`
	CourtID    int64  `json:"courtId"`
	FacilityID int64  `json:"facilityId"`
	BlockDate  string `json:"blockDate"`
	StartTime  string `json:"startTime"`
	EndTime    string `json:"endTime"`
	Reason     string `json:"reason"`
	CreatedAt  string `json:"createdAt"`
}

// FromDomainBlockedSlot конвертирует domain модель в DTO
func FromDomainBlockedSlot(s *domain.BlockedSlot) *BlockedSlotResponse {
	if s == nil {
		return nil
	}

	return &BlockedSlotResponse{
		ID:         s.ID,
		CourtID:    s.CourtID,
		FacilityID: s.FacilityID,
		BlockDate:  s.BlockDate.Format(domain.DateFormat),
		StartTime:  s.StartTime.String(),
		EndTime:    s.EndTime.String(),
		Reason:     s.Reason,
		CreatedAt:  s.CreatedAt.Format(time.RFC3339),
	}
}
