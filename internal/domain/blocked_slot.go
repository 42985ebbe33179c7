package domain

import (
	"time"

	"github.com/m04kA/SCB-BookingService/pkg/types"
)

// BlockedSlot represents an owner-declared unavailable slot (e.g. maintenance)
// Создается и удаляется владельцем площадки, других переходов нет
type BlockedSlot struct {
	ID         int64
	CourtID    int64
	FacilityID int64
	BlockDate  time.Time
	StartTime  types.TimeString
	EndTime    types.TimeString
	Reason     string
	CreatedAt  time.Time
}
